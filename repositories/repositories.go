package repositories

import (
	"context"

	"github.com/zsmartex/coreledger/models"
)

type AccountRepository interface {
	// GetByOwnerAndKind returns *models.AccountNotFoundError when the party has no such account.
	// Inside Store.Atomic the row stays locked until the unit commits or rolls back.
	GetByOwnerAndKind(ctx context.Context, owner_id int64, kind models.AccountKind) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	ListByOwner(ctx context.Context, owner_id int64) ([]*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Add(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
}

type TransactionRepository interface {
	Add(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	EntriesByAccount(ctx context.Context, account_id int64) ([]*models.JournalEntry, error)
}

type ContractorRepository interface {
	Add(ctx context.Context, contractor *models.Contractor) error
	GetByID(ctx context.Context, id int64) (*models.Contractor, error)
}

type Repositories interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Contractors() ContractorRepository
}

// Store is the persistence boundary of the ledger. Repositories obtained directly from the
// store are not transactional; Atomic is the unit of work: every write made through the
// repositories passed to fn commits together when fn returns nil and is discarded otherwise.
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}
