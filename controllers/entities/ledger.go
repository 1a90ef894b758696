package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/coreledger/models"
	"github.com/zsmartex/coreledger/services/ledger_service"
)

type AccountEntity struct {
	ID        int64              `json:"id"`
	OwnerID   int64              `json:"owner_id"`
	Kind      models.AccountKind `json:"kind"`
	Balance   decimal.Decimal    `json:"balance"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type JournalEntryEntity struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

type TransactionEntity struct {
	ID                int64                      `json:"id"`
	Description       string                     `json:"description"`
	Category          models.TransactionCategory `json:"category"`
	OrderID           null.Int64                 `json:"order_id"`
	ExternalReference string                     `json:"external_reference,omitempty"`
	State             models.TransactionState    `json:"state"`
	TotalAmount       decimal.Decimal            `json:"total_amount"`
	JournalEntries    []JournalEntryEntity       `json:"journal_entries"`
	CreatedAt         time.Time                  `json:"created_at"`
}

type ContractorEntity struct {
	ID        int64                 `json:"id"`
	FullName  string                `json:"full_name"`
	Type      models.ContractorType `json:"type"`
	Accounts  []AccountEntity       `json:"accounts"`
	CreatedAt time.Time             `json:"created_at"`
}

type BalanceEntity struct {
	OwnerID int64              `json:"owner_id"`
	Kind    models.AccountKind `json:"kind"`
	Balance decimal.Decimal    `json:"balance"`
}

type ResultEntity struct {
	Success          bool            `json:"success"`
	TransactionID    int64           `json:"transaction_id"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	Balances         []BalanceEntity `json:"balances"`
}

func AccountToEntity(account *models.Account) AccountEntity {
	return AccountEntity{
		ID:        account.ID,
		OwnerID:   account.OwnerID,
		Kind:      account.Kind,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	}
}

func TransactionToEntity(transaction *models.Transaction) TransactionEntity {
	entries := make([]JournalEntryEntity, 0, len(transaction.JournalEntries))
	for _, entry := range transaction.JournalEntries {
		entries = append(entries, JournalEntryEntity{
			ID:        entry.ID,
			AccountID: entry.AccountID,
			Debit:     entry.Debit.Decimal(),
			Credit:    entry.Credit.Decimal(),
		})
	}

	return TransactionEntity{
		ID:                transaction.ID,
		Description:       transaction.Description,
		Category:          transaction.Category,
		OrderID:           transaction.OrderID,
		ExternalReference: transaction.ExternalReference,
		State:             transaction.State,
		TotalAmount:       transaction.GetTotalAmount().Decimal(),
		JournalEntries:    entries,
		CreatedAt:         transaction.CreatedAt,
	}
}

func ContractorToEntity(contractor *models.Contractor) ContractorEntity {
	accounts := make([]AccountEntity, 0, len(contractor.Accounts))
	for _, account := range contractor.Accounts {
		accounts = append(accounts, AccountToEntity(account))
	}

	return ContractorEntity{
		ID:        contractor.ID,
		FullName:  contractor.FullName,
		Type:      contractor.Type,
		Accounts:  accounts,
		CreatedAt: contractor.CreatedAt,
	}
}

func ResultToEntity(result *ledger_service.Result) ResultEntity {
	balances := make([]BalanceEntity, 0, len(result.Accounts))
	for _, account := range result.Accounts {
		balances = append(balances, BalanceEntity{
			OwnerID: account.OwnerID,
			Kind:    account.Kind,
			Balance: account.Balance,
		})
	}

	return ResultEntity{
		Success:          true,
		TransactionID:    result.TransactionID,
		PaymentReference: result.PaymentReference,
		Balances:         balances,
	}
}
