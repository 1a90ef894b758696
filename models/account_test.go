package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletNeverGoesNegative(t *testing.T) {
	wallet, err := NewAccount(1, KindWallet)
	require.NoError(t, err)

	require.NoError(t, wallet.Credit(MustMoney("10")))
	assert.True(t, wallet.HasSufficientFunds(MustMoney("10")))
	assert.False(t, wallet.HasSufficientFunds(MustMoney("10.0001")))

	err = wallet.Debit(MustMoney("40"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var insufficient *InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.EqualValues(t, 1, insufficient.OwnerID)
	assert.Equal(t, KindWallet, insufficient.Kind)
	assert.True(t, decimal.NewFromInt(10).Equal(wallet.Balance))

	require.NoError(t, wallet.Debit(MustMoney("10")))
	assert.True(t, wallet.Balance.IsZero())
}

func TestNonWalletKindsMayGoNegative(t *testing.T) {
	for _, kind := range []AccountKind{KindRevenue, KindPayable} {
		account, err := NewAccount(2, kind)
		require.NoError(t, err)

		assert.True(t, account.HasSufficientFunds(MustMoney("1000")))
		require.NoError(t, account.Debit(MustMoney("25.5")))
		assert.True(t, decimal.RequireFromString("-25.5").Equal(account.Balance), string(kind))

		assert.False(t, account.Covers(MustMoney("1")))
	}
}

func TestAccountRejectsNonPositiveAmounts(t *testing.T) {
	account, _ := NewAccount(3, KindRevenue)

	assert.ErrorIs(t, account.Debit(Zero), ErrInvalidAmount)
	assert.ErrorIs(t, account.Credit(Zero), ErrInvalidAmount)
	assert.True(t, account.Balance.IsZero())
}

func TestAccountKinds(t *testing.T) {
	_, err := NewAccount(1, AccountKind("savings"))
	assert.ErrorIs(t, err, ErrInvalidAccountKind)

	kind, err := ParseAccountKind("payable")
	require.NoError(t, err)
	assert.Equal(t, KindPayable, kind)

	_, err = ParseAccountKind("cash")
	assert.ErrorIs(t, err, ErrInvalidAccountKind)

	for _, kind := range AccountKinds() {
		assert.True(t, kind.Valid())
	}

	// unknown kinds fall back to the strict policy
	stray := &Account{OwnerID: 1, Kind: AccountKind("legacy"), Balance: decimal.Zero}
	assert.False(t, stray.HasSufficientFunds(MustMoney("1")))
}

func TestBalanceRoundsHalfToEven(t *testing.T) {
	account := &Account{OwnerID: 4, Kind: KindRevenue, Balance: decimal.RequireFromString("2.50005")}

	require.NoError(t, account.Credit(MustMoney("1")))
	assert.Equal(t, "3.5", account.Balance.String())

	account.Balance = decimal.RequireFromString("1.00015")
	require.NoError(t, account.Debit(MustMoney("1")))
	assert.Equal(t, "0.0002", account.Balance.String())
}

func TestApplyEntryAndReplay(t *testing.T) {
	debit, err := NewJournalEntry(1, 9, MustMoney("40"), Zero)
	require.NoError(t, err)
	credit, err := NewJournalEntry(2, 9, Zero, MustMoney("100"))
	require.NoError(t, err)

	account, _ := NewAccount(5, KindWallet)
	account.ApplyEntry(credit)
	account.ApplyEntry(debit)

	assert.True(t, decimal.NewFromInt(60).Equal(account.Balance))
	assert.True(t, account.Balance.Equal(ReplayBalance([]*JournalEntry{credit, debit})))
	assert.True(t, ReplayBalance(nil).IsZero())
}

func TestContractorOpeningAccounts(t *testing.T) {
	company, err := NewContractor("Platform", ContractorCompany)
	require.NoError(t, err)
	company.ID = 1

	accounts, err := company.OpenAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, KindRevenue, accounts[0].Kind)
	assert.Equal(t, KindPayable, accounts[1].Kind)
	assert.EqualValues(t, 1, accounts[1].OwnerID)

	payable, err := company.GetAccount(KindPayable)
	require.NoError(t, err)
	assert.Same(t, accounts[1], payable)

	_, err = company.GetAccount(KindWallet)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = NewContractor("", ContractorDriver)
	assert.ErrorIs(t, err, ErrInvalidDescription)

	contractor_type, err := ParseContractorType("partner")
	require.NoError(t, err)
	assert.Equal(t, []AccountKind{KindRevenue}, contractor_type.OpeningAccountKinds())

	_, err = ParseContractorType("robot")
	assert.ErrorIs(t, err, ErrInvalidContractorType)
}
