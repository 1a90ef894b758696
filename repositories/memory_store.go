package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zsmartex/coreledger/models"
)

var ErrDuplicateAccount = errors.New("duplicate account")

type memoryData struct {
	contractors       map[int64]models.Contractor
	accounts          map[int64]models.Account
	transactions      map[int64]models.Transaction
	entries           []models.JournalEntry
	nextContractorID  int64
	nextAccountID     int64
	nextTransactionID int64
	nextEntryID       int64
}

func newMemoryData() *memoryData {
	return &memoryData{
		contractors:  make(map[int64]models.Contractor),
		accounts:     make(map[int64]models.Account),
		transactions: make(map[int64]models.Transaction),
		entries:      make([]models.JournalEntry, 0),
	}
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		contractors:       make(map[int64]models.Contractor, len(d.contractors)),
		accounts:          make(map[int64]models.Account, len(d.accounts)),
		transactions:      make(map[int64]models.Transaction, len(d.transactions)),
		entries:           make([]models.JournalEntry, len(d.entries)),
		nextContractorID:  d.nextContractorID,
		nextAccountID:     d.nextAccountID,
		nextTransactionID: d.nextTransactionID,
		nextEntryID:       d.nextEntryID,
	}

	for id, contractor := range d.contractors {
		c.contractors[id] = contractor
	}
	for id, account := range d.accounts {
		c.accounts[id] = account
	}
	for id, transaction := range d.transactions {
		c.transactions[id] = transaction
	}
	copy(c.entries, d.entries)

	return c
}

// MemoryStore is an in-process Store. Units of work run one at a time against a private copy
// of the data which replaces the committed copy only when the unit succeeds.
type MemoryStore struct {
	mu         sync.Mutex
	data       *memoryData
	failCommit error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemoryData()}
}

// FailNextCommit makes the next unit of work fail with err after fn has run.
func (s *MemoryStore) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failCommit = err
}

func (s *MemoryStore) direct(fn func(d *memoryData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

func (s *MemoryStore) Accounts() AccountRepository {
	return &memoryAccounts{run: s.direct}
}

func (s *MemoryStore) Transactions() TransactionRepository {
	return &memoryTransactions{run: s.direct}
}

func (s *MemoryStore) Contractors() ContractorRepository {
	return &memoryContractors{run: s.direct}
}

func (s *MemoryStore) Atomic(ctx context.Context, fn func(repos Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.data.clone()
	if err := fn(newMemoryUnit(work)); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if s.failCommit != nil {
		err := s.failCommit
		s.failCommit = nil
		return err
	}

	s.data = work
	return nil
}

type memoryUnit struct {
	accounts     *memoryAccounts
	transactions *memoryTransactions
	contractors  *memoryContractors
}

func newMemoryUnit(d *memoryData) *memoryUnit {
	run := func(fn func(d *memoryData) error) error {
		return fn(d)
	}

	return &memoryUnit{
		accounts:     &memoryAccounts{run: run},
		transactions: &memoryTransactions{run: run},
		contractors:  &memoryContractors{run: run},
	}
}

func (u *memoryUnit) Accounts() AccountRepository         { return u.accounts }
func (u *memoryUnit) Transactions() TransactionRepository { return u.transactions }
func (u *memoryUnit) Contractors() ContractorRepository   { return u.contractors }

type memoryAccounts struct {
	run func(fn func(d *memoryData) error) error
}

func (r *memoryAccounts) GetByOwnerAndKind(ctx context.Context, owner_id int64, kind models.AccountKind) (*models.Account, error) {
	var found *models.Account

	err := r.run(func(d *memoryData) error {
		for _, account := range d.accounts {
			if account.OwnerID == owner_id && account.Kind == kind {
				a := account
				found = &a
				return nil
			}
		}

		return &models.AccountNotFoundError{OwnerID: owner_id, Kind: kind}
	})

	return found, err
}

func (r *memoryAccounts) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var found *models.Account

	err := r.run(func(d *memoryData) error {
		account, ok := d.accounts[id]
		if !ok {
			return fmt.Errorf("%w: id %d", models.ErrAccountNotFound, id)
		}

		found = &account
		return nil
	})

	return found, err
}

func (r *memoryAccounts) ListByOwner(ctx context.Context, owner_id int64) ([]*models.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]*models.Account, 0)
	for _, account := range accounts {
		if account.OwnerID == owner_id {
			owned = append(owned, account)
		}
	}

	return owned, nil
}

func (r *memoryAccounts) List(ctx context.Context) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0)

	err := r.run(func(d *memoryData) error {
		for _, account := range d.accounts {
			a := account
			accounts = append(accounts, &a)
		}

		return nil
	})

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, err
}

func (r *memoryAccounts) Add(ctx context.Context, account *models.Account) error {
	return r.run(func(d *memoryData) error {
		for _, existing := range d.accounts {
			if existing.OwnerID == account.OwnerID && existing.Kind == account.Kind {
				return fmt.Errorf("%w: owner id %d, kind %s", ErrDuplicateAccount, account.OwnerID, account.Kind)
			}
		}

		d.nextAccountID++
		now := time.Now().UTC()
		account.ID = d.nextAccountID
		account.CreatedAt = now
		account.UpdatedAt = now
		d.accounts[account.ID] = *account

		return nil
	})
}

func (r *memoryAccounts) Update(ctx context.Context, account *models.Account) error {
	return r.run(func(d *memoryData) error {
		stored, ok := d.accounts[account.ID]
		if !ok {
			return fmt.Errorf("%w: id %d", models.ErrAccountNotFound, account.ID)
		}

		account.UpdatedAt = time.Now().UTC()
		account.Version = stored.Version + 1
		stored.Balance = account.Balance
		stored.Version = account.Version
		stored.UpdatedAt = account.UpdatedAt
		d.accounts[account.ID] = stored

		return nil
	})
}

type memoryTransactions struct {
	run func(fn func(d *memoryData) error) error
}

func (r *memoryTransactions) Add(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID != 0 {
		return fmt.Errorf("transaction %d is already persisted", transaction.ID)
	}

	return r.run(func(d *memoryData) error {
		d.nextTransactionID++
		transaction.ID = d.nextTransactionID

		for _, entry := range transaction.JournalEntries {
			d.nextEntryID++
			entry.ID = d.nextEntryID
			entry.TransactionID = transaction.ID
			d.entries = append(d.entries, *entry)
		}

		stored := *transaction
		stored.JournalEntries = nil
		d.transactions[transaction.ID] = stored

		return nil
	})
}

func (r *memoryTransactions) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var found *models.Transaction

	err := r.run(func(d *memoryData) error {
		transaction, ok := d.transactions[id]
		if !ok {
			return fmt.Errorf("%w: id %d", models.ErrTransactionNotFound, id)
		}

		transaction.JournalEntries = make([]*models.JournalEntry, 0)
		for _, entry := range d.entries {
			if entry.TransactionID == id {
				e := entry
				transaction.JournalEntries = append(transaction.JournalEntries, &e)
			}
		}

		found = &transaction
		return nil
	})

	return found, err
}

func (r *memoryTransactions) EntriesByAccount(ctx context.Context, account_id int64) ([]*models.JournalEntry, error) {
	entries := make([]*models.JournalEntry, 0)

	err := r.run(func(d *memoryData) error {
		for _, entry := range d.entries {
			if entry.AccountID == account_id {
				e := entry
				entries = append(entries, &e)
			}
		}

		return nil
	})

	return entries, err
}

type memoryContractors struct {
	run func(fn func(d *memoryData) error) error
}

func (r *memoryContractors) Add(ctx context.Context, contractor *models.Contractor) error {
	return r.run(func(d *memoryData) error {
		d.nextContractorID++
		now := time.Now().UTC()
		contractor.ID = d.nextContractorID
		contractor.UpdatedAt = now
		if contractor.CreatedAt.IsZero() {
			contractor.CreatedAt = now
		}

		stored := *contractor
		stored.Accounts = nil
		d.contractors[contractor.ID] = stored

		return nil
	})
}

func (r *memoryContractors) GetByID(ctx context.Context, id int64) (*models.Contractor, error) {
	var found *models.Contractor

	err := r.run(func(d *memoryData) error {
		contractor, ok := d.contractors[id]
		if !ok {
			return fmt.Errorf("%w: id %d", models.ErrContractorNotFound, id)
		}

		contractor.Accounts = make([]*models.Account, 0)
		for _, account := range d.accounts {
			if account.OwnerID == id {
				a := account
				contractor.Accounts = append(contractor.Accounts, &a)
			}
		}
		sort.Slice(contractor.Accounts, func(i, j int) bool { return contractor.Accounts[i].ID < contractor.Accounts[j].ID })

		found = &contractor
		return nil
	})

	return found, err
}
