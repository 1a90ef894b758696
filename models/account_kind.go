package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	KindWallet  AccountKind = "wallet"
	KindRevenue AccountKind = "revenue"
	KindPayable AccountKind = "payable"
)

// sufficiencyPolicy reports whether an account holding balance may be debited by amount.
type sufficiencyPolicy func(balance decimal.Decimal, amount Money) bool

func mustCover(balance decimal.Decimal, amount Money) bool {
	return balance.GreaterThanOrEqual(amount.Decimal())
}

// mayGoNegative models platform-side liabilities that accumulate as IOUs.
func mayGoNegative(decimal.Decimal, Money) bool {
	return true
}

var sufficiencyPolicies = map[AccountKind]sufficiencyPolicy{
	KindWallet:  mustCover,
	KindRevenue: mayGoNegative,
	KindPayable: mayGoNegative,
}

func AccountKinds() []AccountKind {
	return []AccountKind{KindWallet, KindRevenue, KindPayable}
}

func ParseAccountKind(value string) (AccountKind, error) {
	kind := AccountKind(value)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountKind, value)
	}

	return kind, nil
}

func (k AccountKind) Valid() bool {
	_, ok := sufficiencyPolicies[k]
	return ok
}

func (k AccountKind) policy() sufficiencyPolicy {
	if p, ok := sufficiencyPolicies[k]; ok {
		return p
	}

	// unknown kinds are treated as the strictest variant
	return mustCover
}
