package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_AddSub_CurrencyMismatch(t *testing.T) {
	usd := NewMoney(decimal.NewFromInt(100), "USD")
	eur := NewMoney(decimal.NewFromInt(50), "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_AddSub_SameCurrency(t *testing.T) {
	a := NewMoney(decimal.NewFromInt(100), "USD")
	b := NewMoney(decimal.NewFromInt(40), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromInt(140)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount.Equal(decimal.NewFromInt(60)))
}

func TestQuantity_RejectsNegative(t *testing.T) {
	_, err := QuantityFromFloat(-0.01)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestQuantity_Add(t *testing.T) {
	a, err := QuantityFromFloat(0.01)
	require.NoError(t, err)
	b, err := QuantityFromFloat(0.02)
	require.NoError(t, err)

	sum := a.Add(b)
	assert.True(t, sum.Decimal().Equal(decimal.NewFromFloat(0.03)))
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("M5")
	require.NoError(t, err)
	assert.Equal(t, M5, tf)

	d, err := tf.Duration()
	require.NoError(t, err)
	assert.Equal(t, 5*60, int(d.Seconds()))

	_, err = ParseTimeframe("M3")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, Sell, Buy.Opposite())
	assert.Equal(t, Buy, Sell.Opposite())
}
