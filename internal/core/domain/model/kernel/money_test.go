package kernel_test

import (
	"testing"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestMoneyFromString(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "0", expected: "0.00"},
		{input: "50", expected: "50.00"},
		{input: "-30", expected: "-30.00"},
		{input: "12.345", expected: "12.35"},
		{input: "-12.345", expected: "-12.35"},
		{input: "0.1", expected: "0.10"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, money(t, tc.input).String())
		})
	}

	_, err := kernel.MoneyFromString("ten")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("no binary float drift", func(t *testing.T) {
		sum := money(t, "0.1").Add(money(t, "0.2"))
		assert.True(t, sum.Equal(money(t, "0.3")))
	})

	t.Run("unit price times bottles", func(t *testing.T) {
		assert.Equal(t, "100.00", money(t, "50").Mul(2).String())
		assert.Equal(t, "37.50", money(t, "12.50").Mul(3).String())
	})

	t.Run("sub and neg", func(t *testing.T) {
		assert.Equal(t, "40.00", money(t, "100").Sub(money(t, "60")).String())
		assert.Equal(t, "-40.00", money(t, "40").Neg().String())
		assert.Equal(t, "40.00", money(t, "-40").Abs().String())
	})

	t.Run("non negative clamp", func(t *testing.T) {
		assert.True(t, money(t, "-5").NonNegative().IsZero())
		assert.Equal(t, "5.00", money(t, "5").NonNegative().String())
	})

	t.Run("sum", func(t *testing.T) {
		total := kernel.SumMoney(money(t, "100"), money(t, "-60"), money(t, "-40"))
		assert.True(t, total.IsZero())
		assert.True(t, kernel.SumMoney().IsZero())
	})
}

func TestMoney_Comparisons(t *testing.T) {
	a := money(t, "10")
	b := money(t, "20")

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.Equal(t, -1, a.Cmp(b))
	assert.True(t, a.IsPositive())
	assert.True(t, a.Neg().IsNegative())
	assert.True(t, kernel.ZeroMoney().IsZero())

	var zero kernel.Money
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Equal(kernel.ZeroMoney()))
}

func TestNewMoney_RoundsToScale(t *testing.T) {
	m := kernel.NewMoney(decimal.RequireFromString("1.005"))
	assert.Equal(t, "1.01", m.String())
	assert.Equal(t, "-7.00", kernel.MoneyFromInt(-7).String())
}
