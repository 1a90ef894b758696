package ledger_service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/coreledger/models"
)

// Party names one account: the owner and the kind of account it holds.
type Party struct {
	OwnerID int64              `json:"owner_id"`
	Kind    models.AccountKind `json:"kind"`
}

func (p Party) String() string {
	return fmt.Sprintf("%d/%s", p.OwnerID, p.Kind)
}

// Share is a signed slice of an intent's total: positive amounts are credited to the
// party, negative amounts debited. Zero shares produce no journal entry.
type Share struct {
	Party  Party           `json:"party"`
	Amount decimal.Decimal `json:"amount"`
}

// Intent is one business movement. The payer is debited Total when it is positive and
// credited |Total| when it is negative, so a reversal is the original intent with every
// sign flipped.
type Intent struct {
	Description       string
	Category          models.TransactionCategory
	OrderID           null.Int64
	ExternalReference string
	Payer             Party
	Total             decimal.Decimal
	Shares            []Share
	// CoverDebits requires every debited account to hold the amount regardless of its kind.
	CoverDebits bool
}

type Result struct {
	TransactionID    int64             `json:"transaction_id"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	Accounts         []*models.Account `json:"-"`
}

// Balance reports the post-commit balance of one of the accounts the operation touched.
func (r *Result) Balance(owner_id int64, kind models.AccountKind) (decimal.Decimal, bool) {
	for _, account := range r.Accounts {
		if account.OwnerID == owner_id && account.Kind == kind {
			return account.Balance, true
		}
	}

	return decimal.Zero, false
}

// Drift is an account whose stored balance differs from the replay of its journal.
type Drift struct {
	AccountID int64              `json:"account_id"`
	OwnerID   int64              `json:"owner_id"`
	Kind      models.AccountKind `json:"kind"`
	Stored    decimal.Decimal    `json:"stored"`
	Replayed  decimal.Decimal    `json:"replayed"`
}

// EventPublisher receives notifications once a unit of work has committed.
type EventPublisher interface {
	TransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error
	BalanceChanged(ctx context.Context, account *models.Account) error
}

type NopPublisher struct{}

func (NopPublisher) TransactionCreated(context.Context, *models.TransactionCreatedEvent) error {
	return nil
}

func (NopPublisher) BalanceChanged(context.Context, *models.Account) error {
	return nil
}

type Config struct {
	// CompanyID owns the platform revenue and payable accounts.
	CompanyID int64 `yaml:"company_id"`
}
