package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type TransactionState string

const (
	StateOpen      TransactionState = "open"
	StateBalanced  TransactionState = "balanced"
	StateCompleted TransactionState = "completed"
)

type TransactionCategory string

const (
	CategoryOrderPayment    TransactionCategory = "order_payment"
	CategoryWalletTopUp     TransactionCategory = "wallet_top_up"
	CategoryWalletDeduction TransactionCategory = "wallet_deduction"
	CategoryEarnings        TransactionCategory = "earnings"
	CategoryReward          TransactionCategory = "reward"
	CategoryVendorBill      TransactionCategory = "vendor_bill"
	CategorySettlement      TransactionCategory = "settlement"
	CategoryRefund          TransactionCategory = "refund"
	CategoryGeneric         TransactionCategory = "generic"
)

// DoubleEntryTolerance absorbs rounding when comparing debit and credit totals.
var DoubleEntryTolerance = decimal.New(1, -MoneyPrecision)

// Transaction owns its journal entries. It is never edited after completion,
// cancellations are recorded as new reversing transactions.
type Transaction struct {
	ID                int64               `json:"id" gorm:"primaryKey"`
	Description       string              `json:"description" gorm:"type:varchar(500);not null"`
	Category          TransactionCategory `json:"category" gorm:"type:varchar(50);not null"`
	OrderID           null.Int64          `json:"order_id" gorm:"type:bigint;index"`
	ExternalReference string              `json:"external_reference" gorm:"type:varchar(255)"`
	State             TransactionState    `json:"state" gorm:"type:varchar(20);not null"`
	JournalEntries    []*JournalEntry     `json:"journal_entries" gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `json:"created_at" gorm:"index"`
}

func NewTransaction(description string, order_id null.Int64) (*Transaction, error) {
	if len(strings.TrimSpace(description)) == 0 {
		return nil, fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	return &Transaction{
		Description:    description,
		Category:       CategoryGeneric,
		OrderID:        order_id,
		State:          StateOpen,
		JournalEntries: make([]*JournalEntry, 0),
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (t *Transaction) AddJournalEntry(account_id int64, debit, credit Money) error {
	if t.State == StateCompleted {
		return fmt.Errorf("%w: cannot add entries to transaction %d", ErrTransactionCompleted, t.ID)
	}

	entry, err := NewJournalEntry(t.ID, account_id, debit, credit)
	if err != nil {
		return err
	}

	t.JournalEntries = append(t.JournalEntries, entry)
	return nil
}

func (t *Transaction) Totals() (debits decimal.Decimal, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, entry := range t.JournalEntries {
		debits = debits.Add(entry.Debit.Decimal())
		credits = credits.Add(entry.Credit.Decimal())
	}

	return debits, credits
}

// ValidateDoubleEntry has no side effects and may be called any number of times.
func (t *Transaction) ValidateDoubleEntry() error {
	if len(t.JournalEntries) == 0 {
		return fmt.Errorf("%w: transaction must have at least one journal entry", ErrUnbalancedTransaction)
	}

	debits, credits := t.Totals()
	if debits.Sub(credits).Abs().GreaterThan(DoubleEntryTolerance) {
		return fmt.Errorf("%w: total debits (%s) must equal total credits (%s)", ErrUnbalancedTransaction, debits.String(), credits.String())
	}

	return nil
}

// GetTotalAmount sums the larger side of every entry.
func (t *Transaction) GetTotalAmount() Money {
	total := Zero
	for _, entry := range t.JournalEntries {
		total = total.Add(entry.Debit.Max(entry.Credit))
	}

	return total
}

// MarkComplete validates the transaction and returns its single completion event.
// Completing twice is a programming error.
func (t *Transaction) MarkComplete() (*TransactionCreatedEvent, error) {
	if t.State == StateCompleted {
		return nil, fmt.Errorf("%w: transaction %d", ErrTransactionCompleted, t.ID)
	}

	if err := t.ValidateDoubleEntry(); err != nil {
		return nil, err
	}

	t.State = StateCompleted

	return &TransactionCreatedEvent{
		TransactionID:     t.ID,
		Description:       t.Description,
		Category:          t.Category,
		TotalAmount:       t.GetTotalAmount(),
		OrderID:           t.OrderID,
		ExternalReference: t.ExternalReference,
		CreatedAt:         t.CreatedAt,
	}, nil
}

func (t *Transaction) CurrentState() TransactionState {
	if t.State == StateCompleted {
		return StateCompleted
	}

	if t.ValidateDoubleEntry() == nil {
		return StateBalanced
	}

	return StateOpen
}

func (t *Transaction) IsCompleted() bool {
	return t.State == StateCompleted
}
