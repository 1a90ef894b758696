package ledger_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/repositories"
	"github.com/zsmartex/coreledger/services/payment_service"
)

type LedgerService struct {
	store     repositories.Store
	gateway   payment_service.Gateway
	publisher EventPublisher
	logger    logrus.FieldLogger
	config    Config
}

func NewLedgerService(store repositories.Store, gateway payment_service.Gateway, publisher EventPublisher, logger logrus.FieldLogger, config Config) *LedgerService {
	if publisher == nil {
		publisher = NopPublisher{}
	}

	return &LedgerService{
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

func (s *LedgerService) CompanyID() int64 {
	return s.config.CompanyID
}

// compareParties orders accounts by owner then kind. Every unit of work locks its accounts in
// this order so two operations sharing accounts can never wait on each other in a cycle.
func compareParties(a, b interface{}) int {
	pa := a.(Party)
	pb := b.(Party)

	switch {
	case pa.OwnerID < pb.OwnerID:
		return -1
	case pa.OwnerID > pb.OwnerID:
		return 1
	}

	return strings.Compare(string(pa.Kind), string(pb.Kind))
}

type leg struct {
	party  Party
	debit  models.Money
	credit models.Money
}

func (l leg) isDebit() bool {
	return l.debit.IsPositive()
}

// signedLeg credits party when amount is positive and debits it when negative.
func signedLeg(party Party, amount decimal.Decimal) (leg, bool, error) {
	if amount.IsZero() {
		return leg{}, false, nil
	}

	money, err := models.NewMoney(amount.Abs())
	if err != nil {
		return leg{}, false, err
	}

	if money.IsZero() {
		return leg{}, false, nil
	}

	if amount.IsPositive() {
		return leg{party: party, debit: models.Zero, credit: money}, true, nil
	}

	return leg{party: party, debit: money, credit: models.Zero}, true, nil
}

// plan validates an intent without touching the store and turns it into postings, payer first.
func plan(intent *Intent) ([]leg, error) {
	if intent.Total.IsZero() {
		return nil, fmt.Errorf("%w: total amount cannot be zero", models.ErrInvalidAmount)
	}

	if !intent.Payer.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidAccountKind, intent.Payer.Kind)
	}

	shares_total := decimal.Zero
	for _, share := range intent.Shares {
		if !share.Party.Kind.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidAccountKind, share.Party.Kind)
		}

		shares_total = shares_total.Add(share.Amount)
	}

	if shares_total.Sub(intent.Total).Abs().GreaterThan(models.DoubleEntryTolerance) {
		return nil, fmt.Errorf("%w: the sum of all shares (%s) must equal the total amount (%s)", models.ErrShareMismatch, shares_total.String(), intent.Total.String())
	}

	legs := make([]leg, 0, len(intent.Shares)+1)

	payer_leg, ok, err := signedLeg(intent.Payer, intent.Total.Neg())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: total amount rounds to zero", models.ErrInvalidAmount)
	}
	legs = append(legs, payer_leg)

	for _, share := range intent.Shares {
		share_leg, ok, err := signedLeg(share.Party, share.Amount)
		if err != nil {
			return nil, err
		}

		if ok {
			legs = append(legs, share_leg)
		}
	}

	return legs, nil
}

// resolve fetches, and inside a unit of work locks, every account named by the intent.
func resolve(ctx context.Context, repos repositories.Repositories, intent *Intent) (*treemap.Map, error) {
	accounts := treemap.NewWith(compareParties)

	accounts.Put(intent.Payer, nil)
	for _, share := range intent.Shares {
		accounts.Put(share.Party, nil)
	}

	for _, key := range accounts.Keys() {
		party := key.(Party)

		account, err := repos.Accounts().GetByOwnerAndKind(ctx, party.OwnerID, party.Kind)
		if err != nil {
			return nil, err
		}

		accounts.Put(party, account)
	}

	return accounts, nil
}

func lookup(accounts *treemap.Map, party Party) *models.Account {
	value, found := accounts.Get(party)
	if !found {
		return nil
	}

	return value.(*models.Account)
}

// checkFunds fails fast, before any balance moves, when a debited account cannot carry its debits.
func checkFunds(accounts *treemap.Map, legs []leg, cover_debits bool) error {
	debits := treemap.NewWith(compareParties)
	for _, l := range legs {
		if !l.isDebit() {
			continue
		}

		total := models.Zero
		if value, found := debits.Get(l.party); found {
			total = value.(models.Money)
		}

		debits.Put(l.party, total.Add(l.debit))
	}

	it := debits.Iterator()
	for it.Next() {
		account := lookup(accounts, it.Key().(Party))
		amount := it.Value().(models.Money)

		sufficient := account.HasSufficientFunds(amount)
		if cover_debits {
			sufficient = account.Covers(amount)
		}

		if !sufficient {
			return &models.InsufficientFundsError{
				OwnerID: account.OwnerID,
				Kind:    account.Kind,
				Balance: account.Balance,
				Amount:  amount,
			}
		}
	}

	return nil
}

// CreateTransaction records one balanced movement described by intent. Either the transaction
// and every balance change commit together or nothing is persisted.
func (s *LedgerService) CreateTransaction(ctx context.Context, intent *Intent) (*Result, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"category": intent.Category,
		"payer":    intent.Payer.String(),
		"total":    intent.Total.String(),
	})

	transaction, err := models.NewTransaction(intent.Description, intent.OrderID)
	if err != nil {
		return nil, err
	}
	if len(intent.Category) > 0 {
		transaction.Category = intent.Category
	}
	transaction.ExternalReference = intent.ExternalReference

	legs, err := plan(intent)
	if err != nil {
		logger.WithError(err).Debug("Rejected ledger intent")
		return nil, err
	}

	var event *models.TransactionCreatedEvent
	var touched []*models.Account

	err = s.store.Atomic(ctx, func(repos repositories.Repositories) error {
		accounts, err := resolve(ctx, repos, intent)
		if err != nil {
			return err
		}

		if err := checkFunds(accounts, legs, intent.CoverDebits); err != nil {
			return err
		}

		for _, l := range legs {
			if err := transaction.AddJournalEntry(lookup(accounts, l.party).ID, l.debit, l.credit); err != nil {
				return err
			}
		}

		if err := transaction.ValidateDoubleEntry(); err != nil {
			return err
		}

		mutated := treemap.NewWith(compareParties)
		for _, l := range legs {
			account := lookup(accounts, l.party)

			if l.isDebit() {
				err = account.Debit(l.debit)
			} else {
				err = account.Credit(l.credit)
			}
			if err != nil {
				return err
			}

			mutated.Put(l.party, account)
		}

		event, err = transaction.MarkComplete()
		if err != nil {
			return err
		}

		if err := repos.Transactions().Add(ctx, transaction); err != nil {
			return err
		}
		event.TransactionID = transaction.ID

		touched = make([]*models.Account, 0, mutated.Size())
		for _, value := range mutated.Values() {
			account := value.(*models.Account)
			if err := repos.Accounts().Update(ctx, account); err != nil {
				return err
			}

			touched = append(touched, account)
		}

		return nil
	})
	if err != nil {
		s.logFailure(logger, err)
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"entries":        len(transaction.JournalEntries),
	}).Info("Ledger transaction committed")

	s.publish(event, touched)

	return &Result{TransactionID: transaction.ID, Accounts: touched}, nil
}

// logFailure keeps business rejections out of the error log.
func (s *LedgerService) logFailure(logger logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, models.ErrAccountNotFound),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrInvalidAmount):
		logger.WithError(err).Warn("Ledger transaction rejected")
	default:
		logger.WithError(err).Error("Ledger transaction failed")
	}
}

// publish runs after the commit, so it must not inherit the caller's cancellation.
func (s *LedgerService) publish(event *models.TransactionCreatedEvent, accounts []*models.Account) {
	ctx := context.Background()

	if err := s.publisher.TransactionCreated(ctx, event); err != nil {
		s.logger.WithError(err).WithField("transaction_id", event.TransactionID).Error("Failed to publish transaction created event")
	}

	for _, account := range accounts {
		if err := s.publisher.BalanceChanged(ctx, account); err != nil {
			s.logger.WithError(err).WithField("account_id", account.ID).Error("Failed to publish balance changed event")
		}
	}
}
