package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one side of a ledger movement. Exactly one of Debit and Credit is positive.
type JournalEntry struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	TransactionID int64     `json:"transaction_id" gorm:"not null;index"`
	AccountID     int64     `json:"account_id" gorm:"not null;index"`
	Debit         Money     `json:"debit" gorm:"type:decimal(18,4);not null;default:0"`
	Credit        Money     `json:"credit" gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

func NewJournalEntry(transaction_id, account_id int64, debit, credit Money) (*JournalEntry, error) {
	if err := validateSides(debit, credit); err != nil {
		return nil, err
	}

	return &JournalEntry{
		TransactionID: transaction_id,
		AccountID:     account_id,
		Debit:         debit,
		Credit:        credit,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func validateSides(debit, credit Money) error {
	if debit.Decimal().IsNegative() || credit.Decimal().IsNegative() {
		return fmt.Errorf("%w: debit and credit amounts cannot be negative", ErrInvalidAmount)
	}

	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("%w: journal entry cannot have both debit (%s) and credit (%s) amounts", ErrMalformedEntry, debit, credit)
	}

	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("%w: journal entry must have either a debit or a credit amount", ErrMalformedEntry)
	}

	return nil
}

func (e *JournalEntry) IsDebit() bool {
	return e.Debit.IsPositive()
}

func (e *JournalEntry) IsCredit() bool {
	return e.Credit.IsPositive()
}

func (e *JournalEntry) Amount() Money {
	if e.IsDebit() {
		return e.Debit
	}

	return e.Credit
}

// Signed is the entry's effect on an account balance: credits add, debits subtract.
func (e *JournalEntry) Signed() decimal.Decimal {
	return e.Credit.Decimal().Sub(e.Debit.Decimal())
}

// ReplayBalance rebuilds a balance from the journal entries posted against one account.
func ReplayBalance(entries []*JournalEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.Signed())
	}

	return balance.RoundBank(MoneyPrecision)
}
