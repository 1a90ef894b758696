package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zsmartex/coreledger/models"
)

// GormStore keeps the ledger in a relational database. Units of work are database
// transactions and every account read inside one takes a row lock (SELECT ... FOR UPDATE),
// so concurrent operations touching the same account are serialized.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contractor{},
		&models.Account{},
		&models.Transaction{},
		&models.JournalEntry{},
	)
}

func (s *GormStore) Accounts() AccountRepository {
	return &gormAccounts{db: s.db}
}

func (s *GormStore) Transactions() TransactionRepository {
	return &gormTransactions{db: s.db}
}

func (s *GormStore) Contractors() ContractorRepository {
	return &gormContractors{db: s.db}
}

func (s *GormStore) Atomic(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormUnit{tx: tx})
	})
}

type gormUnit struct {
	tx *gorm.DB
}

func (u *gormUnit) Accounts() AccountRepository {
	return &gormAccounts{db: u.tx, lock: true}
}

func (u *gormUnit) Transactions() TransactionRepository {
	return &gormTransactions{db: u.tx}
}

func (u *gormUnit) Contractors() ContractorRepository {
	return &gormContractors{db: u.tx}
}

type gormAccounts struct {
	db   *gorm.DB
	lock bool
}

func (r *gormAccounts) query(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if r.lock {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "accounts"}})
	}

	return tx
}

func (r *gormAccounts) GetByOwnerAndKind(ctx context.Context, owner_id int64, kind models.AccountKind) (*models.Account, error) {
	var account *models.Account

	result := r.query(ctx).Where("owner_id = ? AND kind = ?", owner_id, kind).First(&account)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, &models.AccountNotFoundError{OwnerID: owner_id, Kind: kind}
	} else if result.Error != nil {
		return nil, result.Error
	}

	return account, nil
}

func (r *gormAccounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account *models.Account

	result := r.query(ctx).Where("id = ?", id).First(&account)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", models.ErrAccountNotFound, id)
	} else if result.Error != nil {
		return nil, result.Error
	}

	return account, nil
}

func (r *gormAccounts) ListByOwner(ctx context.Context, owner_id int64) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	if err := r.db.WithContext(ctx).Where("owner_id = ?", owner_id).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *gormAccounts) List(ctx context.Context) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	if err := r.db.WithContext(ctx).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *gormAccounts) Add(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update persists the balance, the only column the domain mutates, and bumps the version.
// The row is locked by the enclosing unit, so the version read with it is current.
func (r *gormAccounts) Update(ctx context.Context, account *models.Account) error {
	updated_at := time.Now().UTC()
	version := account.Version + 1

	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"balance":    account.Balance,
			"version":    version,
			"updated_at": updated_at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected != 1 {
		return fmt.Errorf("%w: id %d", models.ErrAccountNotFound, account.ID)
	}

	account.Version = version
	account.UpdatedAt = updated_at

	return nil
}

type gormTransactions struct {
	db *gorm.DB
}

// Add inserts the transaction together with its journal entries.
func (r *gormTransactions) Add(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID != 0 {
		return fmt.Errorf("transaction %d is already persisted", transaction.ID)
	}

	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *gormTransactions) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var transaction *models.Transaction

	result := r.db.WithContext(ctx).
		Preload("JournalEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("journal_entries.id asc")
		}).
		Where("id = ?", id).
		First(&transaction)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", models.ErrTransactionNotFound, id)
	} else if result.Error != nil {
		return nil, result.Error
	}

	return transaction, nil
}

func (r *gormTransactions) EntriesByAccount(ctx context.Context, account_id int64) ([]*models.JournalEntry, error) {
	entries := make([]*models.JournalEntry, 0)

	if err := r.db.WithContext(ctx).Where("account_id = ?", account_id).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

type gormContractors struct {
	db *gorm.DB
}

// Add inserts the contractor row only; accounts go through AccountRepository.Add.
func (r *gormContractors) Add(ctx context.Context, contractor *models.Contractor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(contractor).Error
}

func (r *gormContractors) GetByID(ctx context.Context, id int64) (*models.Contractor, error) {
	var contractor *models.Contractor

	result := r.db.WithContext(ctx).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("accounts.id asc")
		}).
		Where("id = ?", id).
		First(&contractor)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", models.ErrContractorNotFound, id)
	} else if result.Error != nil {
		return nil, result.Error
	}

	return contractor, nil
}
