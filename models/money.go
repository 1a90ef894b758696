package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of fractional digits every Money value is rounded to, half to even.
const MoneyPrecision int32 = 4

// Money is an immutable, non-negative monetary quantity.
type Money struct {
	amount decimal.Decimal
}

var Zero = Money{amount: decimal.Zero}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Zero, fmt.Errorf("%w: money amount cannot be negative (%s)", ErrInvalidAmount, amount.String())
	}

	return Money{amount: amount.RoundBank(MoneyPrecision)}, nil
}

func NewMoneyFromString(value string) (Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return NewMoney(amount)
}

// MustMoney panics on negative input. Meant for constants and tests.
func MustMoney(value string) Money {
	m, err := NewMoneyFromString(value)
	if err != nil {
		panic(err)
	}

	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).RoundBank(MoneyPrecision)}
}

// Sub fails when other is larger than m, the result would leave the Money domain.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(factor))
}

func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if !divisor.IsPositive() {
		return Zero, fmt.Errorf("%w: divisor must be positive (%s)", ErrInvalidAmount, divisor.String())
	}

	return NewMoney(m.amount.Div(divisor))
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Max returns the larger of m and other.
func (m Money) Max(other Money) Money {
	if other.GreaterThan(m) {
		return other
	}

	return m
}

func (m Money) String() string {
	return m.amount.StringFixed(MoneyPrecision)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}

	money, err := NewMoney(amount)
	if err != nil {
		return err
	}

	*m = money
	return nil
}

// Scan implements sql.Scanner so Money can live in decimal(18,4) columns.
func (m *Money) Scan(value interface{}) error {
	var amount decimal.Decimal
	if err := amount.Scan(value); err != nil {
		return err
	}

	money, err := NewMoney(amount)
	if err != nil {
		return err
	}

	*m = money
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}

// SumMoney adds up values, Zero for an empty list.
func SumMoney(values ...Money) Money {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return total
}
