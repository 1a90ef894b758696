package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/volatiletech/null"
)

type suiteTransactionTester struct {
	suite.Suite
	transaction *Transaction
}

func (s *suiteTransactionTester) SetupTest() {
	transaction, err := NewTransaction("Order payment for order #1", null.Int64From(1))
	s.Require().NoError(err)

	s.transaction = transaction
}

func (s *suiteTransactionTester) TestJournalEntrySingleSided() {
	_, err := NewJournalEntry(1, 1, MustMoney("1"), MustMoney("1"))
	s.ErrorIs(err, ErrMalformedEntry)

	_, err = NewJournalEntry(1, 1, Zero, Zero)
	s.ErrorIs(err, ErrMalformedEntry)

	entry, err := NewJournalEntry(1, 1, Zero, MustMoney("5"))
	s.NoError(err)
	s.True(entry.IsCredit())
	s.False(entry.IsDebit())
	s.True(MustMoney("5").Equal(entry.Amount()))
	s.True(decimal.NewFromInt(5).Equal(entry.Signed()))

	entry, err = NewJournalEntry(1, 1, MustMoney("5"), Zero)
	s.NoError(err)
	s.True(entry.IsDebit())
	s.True(decimal.NewFromInt(-5).Equal(entry.Signed()))
}

func (s *suiteTransactionTester) TestEmptyTransactionIsUnbalanced() {
	s.ErrorIs(s.transaction.ValidateDoubleEntry(), ErrUnbalancedTransaction)
	s.Equal(StateOpen, s.transaction.CurrentState())

	_, err := s.transaction.MarkComplete()
	s.ErrorIs(err, ErrUnbalancedTransaction)
}

func (s *suiteTransactionTester) TestDoubleEntryRegardlessOfOrder() {
	s.NoError(s.transaction.AddJournalEntry(2, Zero, MustMoney("25")))
	s.ErrorIs(s.transaction.ValidateDoubleEntry(), ErrUnbalancedTransaction)

	s.NoError(s.transaction.AddJournalEntry(3, Zero, MustMoney("15")))
	s.NoError(s.transaction.AddJournalEntry(1, MustMoney("40"), Zero))

	s.NoError(s.transaction.ValidateDoubleEntry())
	s.Equal(StateBalanced, s.transaction.CurrentState())
}

func (s *suiteTransactionTester) TestValidateIsIdempotent() {
	s.NoError(s.transaction.AddJournalEntry(1, MustMoney("10"), Zero))
	s.NoError(s.transaction.AddJournalEntry(2, Zero, MustMoney("10")))

	for i := 0; i < 3; i++ {
		s.NoError(s.transaction.ValidateDoubleEntry())
	}

	s.Len(s.transaction.JournalEntries, 2)
	s.Equal(StateBalanced, s.transaction.CurrentState())
}

func (s *suiteTransactionTester) TestTolerance() {
	s.NoError(s.transaction.AddJournalEntry(1, MustMoney("10"), Zero))
	s.NoError(s.transaction.AddJournalEntry(2, Zero, MustMoney("9.9999")))
	s.NoError(s.transaction.ValidateDoubleEntry())

	s.NoError(s.transaction.AddJournalEntry(3, MustMoney("0.0001"), Zero))
	s.NoError(s.transaction.AddJournalEntry(4, MustMoney("0.0001"), Zero))
	s.ErrorIs(s.transaction.ValidateDoubleEntry(), ErrUnbalancedTransaction)
}

func (s *suiteTransactionTester) TestMarkCompleteOnce() {
	s.NoError(s.transaction.AddJournalEntry(1, MustMoney("40"), Zero))
	s.NoError(s.transaction.AddJournalEntry(2, Zero, MustMoney("25")))
	s.NoError(s.transaction.AddJournalEntry(3, Zero, MustMoney("15")))

	event, err := s.transaction.MarkComplete()
	s.Require().NoError(err)
	s.Equal("Order payment for order #1", event.Description)
	s.Equal(null.Int64From(1), event.OrderID)
	s.True(MustMoney("80").Equal(event.TotalAmount))
	s.True(s.transaction.IsCompleted())
	s.Equal(StateCompleted, s.transaction.CurrentState())

	_, err = s.transaction.MarkComplete()
	s.ErrorIs(err, ErrTransactionCompleted)

	s.ErrorIs(s.transaction.AddJournalEntry(4, Zero, MustMoney("1")), ErrTransactionCompleted)
	s.Len(s.transaction.JournalEntries, 3)
}

func (s *suiteTransactionTester) TestDescriptionRequired() {
	_, err := NewTransaction("  ", null.Int64{})
	s.ErrorIs(err, ErrInvalidDescription)
}

func TestTransaction(t *testing.T) {
	suite.Run(t, new(suiteTransactionTester))
}
