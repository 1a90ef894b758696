package ledger_service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/repositories"
)

// Onboard registers a party and opens the accounts its type needs, all in one unit of work.
func (s *LedgerService) Onboard(ctx context.Context, full_name string, contractor_type models.ContractorType) (*models.Contractor, error) {
	contractor, err := models.NewContractor(full_name, contractor_type)
	if err != nil {
		return nil, err
	}

	err = s.store.Atomic(ctx, func(repos repositories.Repositories) error {
		if err := repos.Contractors().Add(ctx, contractor); err != nil {
			return err
		}

		accounts, err := contractor.OpenAccounts()
		if err != nil {
			return err
		}

		for _, account := range accounts {
			if err := repos.Accounts().Add(ctx, account); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("type", contractor_type).Error("Failed to onboard contractor")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"contractor_id": contractor.ID,
		"type":          contractor.Type,
		"accounts":      len(contractor.Accounts),
	}).Info("Contractor onboarded")

	return contractor, nil
}

func (s *LedgerService) GetContractor(ctx context.Context, id int64) (*models.Contractor, error) {
	return s.store.Contractors().GetByID(ctx, id)
}

func (s *LedgerService) GetBalance(ctx context.Context, owner_id int64, kind models.AccountKind) (*models.Account, error) {
	return s.store.Accounts().GetByOwnerAndKind(ctx, owner_id, kind)
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	return s.store.Transactions().GetByID(ctx, id)
}
