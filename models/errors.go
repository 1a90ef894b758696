package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidDescription    = errors.New("invalid description")
	ErrMalformedEntry        = errors.New("malformed journal entry")
	ErrUnbalancedTransaction = errors.New("unbalanced transaction")
	ErrTransactionCompleted  = errors.New("transaction already completed")
	ErrAccountNotFound       = errors.New("account not found")
	ErrContractorNotFound    = errors.New("contractor not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrShareMismatch         = errors.New("share mismatch")
	ErrPaymentDeclined       = errors.New("payment declined")
	ErrInvalidAccountKind    = errors.New("invalid account kind")
	ErrInvalidContractorType = errors.New("invalid contractor type")
)

type AccountNotFoundError struct {
	OwnerID int64
	Kind    AccountKind
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found (owner id: %d, kind: %s)", e.OwnerID, e.Kind)
}

func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

type InsufficientFundsError struct {
	OwnerID int64
	Kind    AccountKind
	Balance decimal.Decimal
	Amount  Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds (owner id: %d, kind: %s, balance: %s, amount: %s)", e.OwnerID, e.Kind, e.Balance.StringFixed(MoneyPrecision), e.Amount.String())
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string {
	return "payment declined: " + e.Reason
}

func (e *PaymentDeclinedError) Is(target error) bool {
	return target == ErrPaymentDeclined
}
