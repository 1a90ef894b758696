package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/volatiletech/null"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zsmartex/coreledger/models"
)

type suiteGormStoreTester struct {
	suite.Suite
	store *GormStore
	ctx   context.Context
}

func (s *suiteGormStoreTester) SetupTest() {
	db, err := gorm.Open(sqlite.Open(filepath.Join(s.T().TempDir(), "ledger.db")), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(Migrate(db))

	s.store = NewGormStore(db)
	s.ctx = context.Background()
}

func (s *suiteGormStoreTester) TearDownTest() {
	if sql_db, err := s.store.db.DB(); err == nil {
		sql_db.Close()
	}
}

func (s *suiteGormStoreTester) onboard(name string, contractor_type models.ContractorType) *models.Contractor {
	contractor, err := models.NewContractor(name, contractor_type)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Contractors().Add(s.ctx, contractor))

	accounts, err := contractor.OpenAccounts()
	s.Require().NoError(err)
	for _, account := range accounts {
		s.Require().NoError(s.store.Accounts().Add(s.ctx, account))
	}

	return contractor
}

func (s *suiteGormStoreTester) TestContractorRoundTrip() {
	company := s.onboard("Platform", models.ContractorCompany)

	found, err := s.store.Contractors().GetByID(s.ctx, company.ID)
	s.NoError(err)
	s.Equal("Platform", found.FullName)
	s.Equal(models.ContractorCompany, found.Type)
	s.Len(found.Accounts, 2)

	_, err = s.store.Contractors().GetByID(s.ctx, company.ID+100)
	s.ErrorIs(err, models.ErrContractorNotFound)
}

func (s *suiteGormStoreTester) TestAccountNotFound() {
	customer := s.onboard("Jane Doe", models.ContractorCustomer)

	_, err := s.store.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindRevenue)
	s.ErrorIs(err, models.ErrAccountNotFound)

	var not_found *models.AccountNotFoundError
	s.True(errors.As(err, &not_found))
	s.Equal(customer.ID, not_found.OwnerID)
}

func (s *suiteGormStoreTester) TestUniqueOwnerKind() {
	customer := s.onboard("Jane Doe", models.ContractorCustomer)

	account, _ := models.NewAccount(customer.ID, models.KindWallet)
	s.Error(s.store.Accounts().Add(s.ctx, account))
}

func (s *suiteGormStoreTester) TestAtomicCommit() {
	customer := s.onboard("Jane Doe", models.ContractorCustomer)
	driver := s.onboard("John Roe", models.ContractorDriver)

	err := s.store.Atomic(s.ctx, func(repos Repositories) error {
		wallet, err := repos.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindWallet)
		if err != nil {
			return err
		}
		revenue, err := repos.Accounts().GetByOwnerAndKind(s.ctx, driver.ID, models.KindRevenue)
		if err != nil {
			return err
		}

		wallet.Credit(models.MustMoney("25.5"))
		revenue.Balance = revenue.Balance.Sub(decimal.RequireFromString("25.5"))

		transaction, _ := models.NewTransaction("Wallet top-up", null.Int64From(12))
		transaction.ExternalReference = "pay-1"
		transaction.AddJournalEntry(wallet.ID, models.Zero, models.MustMoney("25.5"))
		transaction.AddJournalEntry(revenue.ID, models.MustMoney("25.5"), models.Zero)
		if _, err := transaction.MarkComplete(); err != nil {
			return err
		}

		if err := repos.Transactions().Add(s.ctx, transaction); err != nil {
			return err
		}
		if err := repos.Accounts().Update(s.ctx, wallet); err != nil {
			return err
		}

		return repos.Accounts().Update(s.ctx, revenue)
	})
	s.Require().NoError(err)

	wallet, err := s.store.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindWallet)
	s.NoError(err)
	s.True(decimal.RequireFromString("25.5").Equal(wallet.Balance))

	revenue, err := s.store.Accounts().GetByOwnerAndKind(s.ctx, driver.ID, models.KindRevenue)
	s.NoError(err)
	s.True(decimal.RequireFromString("-25.5").Equal(revenue.Balance))

	entries, err := s.store.Transactions().EntriesByAccount(s.ctx, wallet.ID)
	s.NoError(err)
	s.Require().Len(entries, 1)

	transaction, err := s.store.Transactions().GetByID(s.ctx, entries[0].TransactionID)
	s.NoError(err)
	s.Equal(models.StateCompleted, transaction.State)
	s.Equal("pay-1", transaction.ExternalReference)
	s.Equal(null.Int64From(12), transaction.OrderID)
	s.Len(transaction.JournalEntries, 2)
	s.NoError(transaction.ValidateDoubleEntry())
	s.True(models.MustMoney("25.5").Equal(transaction.GetTotalAmount()))

	s.True(wallet.Balance.Equal(models.ReplayBalance(entries)))
}

func (s *suiteGormStoreTester) TestAtomicRollback() {
	customer := s.onboard("Jane Doe", models.ContractorCustomer)
	failure := errors.New("commit rejected")

	err := s.store.Atomic(s.ctx, func(repos Repositories) error {
		wallet, err := repos.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindWallet)
		if err != nil {
			return err
		}

		wallet.Credit(models.MustMoney("10"))
		if err := repos.Accounts().Update(s.ctx, wallet); err != nil {
			return err
		}

		transaction, _ := models.NewTransaction("Wallet top-up", null.Int64{})
		transaction.AddJournalEntry(wallet.ID, models.Zero, models.MustMoney("10"))
		if err := repos.Transactions().Add(s.ctx, transaction); err != nil {
			return err
		}

		return failure
	})
	s.ErrorIs(err, failure)

	wallet, err := s.store.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindWallet)
	s.NoError(err)
	s.True(wallet.Balance.IsZero())

	entries, err := s.store.Transactions().EntriesByAccount(s.ctx, wallet.ID)
	s.NoError(err)
	s.Empty(entries)
}

func (s *suiteGormStoreTester) TestUpdateBumpsVersion() {
	customer := s.onboard("Jane Doe", models.ContractorCustomer)

	wallet, err := s.store.Accounts().GetByOwnerAndKind(s.ctx, customer.ID, models.KindWallet)
	s.Require().NoError(err)
	s.Zero(wallet.Version)

	wallet.Balance = decimal.NewFromInt(5)
	s.Require().NoError(s.store.Accounts().Update(s.ctx, wallet))
	s.EqualValues(1, wallet.Version)

	found, err := s.store.Accounts().GetByID(s.ctx, wallet.ID)
	s.Require().NoError(err)
	s.EqualValues(1, found.Version)
	s.True(decimal.NewFromInt(5).Equal(found.Balance))
}

func (s *suiteGormStoreTester) TestUpdateMissingAccount() {
	account, _ := models.NewAccount(1, models.KindWallet)
	account.ID = 404

	s.ErrorIs(s.store.Accounts().Update(s.ctx, account), models.ErrAccountNotFound)
}

func TestGormStore(t *testing.T) {
	suite.Run(t, new(suiteGormStoreTester))
}
