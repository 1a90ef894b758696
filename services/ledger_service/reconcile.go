package ledger_service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/repositories"
)

// replay reads an account under lock together with the balance its journal adds up to.
func replay(ctx context.Context, repos repositories.Repositories, account_id int64) (*models.Account, *Drift, error) {
	account, err := repos.Accounts().GetByID(ctx, account_id)
	if err != nil {
		return nil, nil, err
	}

	entries, err := repos.Transactions().EntriesByAccount(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	replayed := models.ReplayBalance(entries)
	if replayed.Equal(account.Balance) {
		return account, nil, nil
	}

	return account, &Drift{
		AccountID: account.ID,
		OwnerID:   account.OwnerID,
		Kind:      account.Kind,
		Stored:    account.Balance,
		Replayed:  replayed,
	}, nil
}

// RebuildBalance overwrites an account's stored balance with the replay of its journal.
func (s *LedgerService) RebuildBalance(ctx context.Context, account_id int64) (*models.Account, error) {
	var rebuilt *models.Account

	err := s.store.Atomic(ctx, func(repos repositories.Repositories) error {
		account, drift, err := replay(ctx, repos, account_id)
		if err != nil {
			return err
		}

		rebuilt = account
		if drift == nil {
			return nil
		}

		s.logger.WithFields(logrus.Fields{
			"account_id": drift.AccountID,
			"stored":     drift.Stored.String(),
			"replayed":   drift.Replayed.String(),
		}).Warn("Rebuilding drifted account balance")

		account.Balance = drift.Replayed
		return repos.Accounts().Update(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return rebuilt, nil
}

// Reconcile compares every stored balance with its journal and reports, without repairing,
// the accounts that disagree.
func (s *LedgerService) Reconcile(ctx context.Context) ([]*Drift, error) {
	accounts, err := s.store.Accounts().List(ctx)
	if err != nil {
		return nil, err
	}

	drifts := make([]*Drift, 0)
	for _, account := range accounts {
		err := s.store.Atomic(ctx, func(repos repositories.Repositories) error {
			_, drift, err := replay(ctx, repos, account.ID)
			if err != nil {
				return err
			}

			if drift != nil {
				drifts = append(drifts, drift)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, drift := range drifts {
		s.logger.WithFields(logrus.Fields{
			"account_id": drift.AccountID,
			"owner_id":   drift.OwnerID,
			"kind":       drift.Kind,
			"stored":     drift.Stored.String(),
			"replayed":   drift.Replayed.String(),
		}).Warn("Account balance drifted from journal")
	}

	s.logger.WithFields(logrus.Fields{"accounts": len(accounts), "drifts": len(drifts)}).Info("Ledger reconciled")

	return drifts, nil
}
