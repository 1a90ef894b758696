package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	OwnerID   int64           `json:"owner_id" gorm:"not null;index;uniqueIndex:idx_accounts_owner_kind"`
	Kind      AccountKind     `json:"kind" gorm:"type:varchar(50);not null;uniqueIndex:idx_accounts_owner_kind"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(18,4);not null;default:0"`
	Version   int64           `json:"version" gorm:"not null;default:0"` // bumped on every balance write
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewAccount(owner_id int64, kind AccountKind) (*Account, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountKind, kind)
	}

	return &Account{
		OwnerID: owner_id,
		Kind:    kind,
		Balance: decimal.Zero,
	}, nil
}

func (a *Account) Debit(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit amount must be positive (owner id: %d, kind: %s, amount: %s)", ErrInvalidAmount, a.OwnerID, a.Kind, amount.String())
	}

	if !a.HasSufficientFunds(amount) {
		return &InsufficientFundsError{OwnerID: a.OwnerID, Kind: a.Kind, Balance: a.Balance, Amount: amount}
	}

	a.Balance = a.Balance.Sub(amount.Decimal()).RoundBank(MoneyPrecision)
	return nil
}

func (a *Account) Credit(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit amount must be positive (owner id: %d, kind: %s, amount: %s)", ErrInvalidAmount, a.OwnerID, a.Kind, amount.String())
	}

	a.Balance = a.Balance.Add(amount.Decimal()).RoundBank(MoneyPrecision)
	return nil
}

// ApplyEntry replays a posted entry onto the balance without any sufficiency check.
func (a *Account) ApplyEntry(entry *JournalEntry) {
	a.Balance = a.Balance.Add(entry.Signed()).RoundBank(MoneyPrecision)
}

func (a *Account) HasSufficientFunds(amount Money) bool {
	return a.Kind.policy()(a.Balance, amount)
}

// Covers is the kind-independent check used by settlements: the balance itself must hold amount.
func (a *Account) Covers(amount Money) bool {
	return mustCover(a.Balance, amount)
}

type AccountJSON struct {
	ID      int64           `json:"id"`
	OwnerID int64           `json:"owner_id"`
	Kind    AccountKind     `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}

func (a *Account) ToJSON() AccountJSON {
	return AccountJSON{
		ID:      a.ID,
		OwnerID: a.OwnerID,
		Kind:    a.Kind,
		Balance: a.Balance,
	}
}
