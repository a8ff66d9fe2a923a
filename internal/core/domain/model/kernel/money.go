package kernel

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every amount.
const MoneyScale = 2

// Money is a signed currency amount with exact decimal arithmetic.
//
// All constructors round half away from zero to MoneyScale digits, so two
// amounts that print the same are always Equal. The zero value is zero money.
type Money struct {
	amount decimal.Decimal
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps d, rounded to MoneyScale.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(MoneyScale)}
}

func MoneyFromInt(units int64) Money {
	return NewMoney(decimal.NewFromInt(units))
}

// MoneyFromString parses a decimal literal such as "12.50" or "-30".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(d), nil
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul multiplies by a whole quantity, e.g. unit price by bottle count.
func (m Money) Mul(quantity int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) Neg() Money {
	return NewMoney(m.amount.Neg())
}

func (m Money) Abs() Money {
	return NewMoney(m.amount.Abs())
}

// NonNegative returns m, or zero when m is negative.
func (m Money) NonNegative() Money {
	if m.IsNegative() {
		return ZeroMoney()
	}
	return m
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

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// SumMoney folds amounts left to right.
func SumMoney(amounts ...Money) Money {
	total := ZeroMoney()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
