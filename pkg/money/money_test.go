package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	testCases := []struct {
		currency string
		expected int32
	}{
		{"EUR", 2},
		{"USD", 2},
		{"JPY", 0},
		{"KWD", 3},
		{"XYZ", 2}, // unknown defaults to 2
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, MinorUnits(tc.currency), "currency %s", tc.currency)
	}
}

func TestRoundHalfUp(t *testing.T) {
	testCases := []struct {
		value    string
		currency string
		expected string
	}{
		{"1.005", "EUR", "1.01"},
		{"1.004", "EUR", "1"},
		{"2.675", "USD", "2.68"},
		{"10.5", "JPY", "11"},
		{"1.2345", "KWD", "1.235"},
		{"0", "EUR", "0"},
	}

	for _, tc := range testCases {
		v := decimal.RequireFromString(tc.value)
		got := RoundHalfUp(v, tc.currency)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
			"round %s %s: got %s", tc.value, tc.currency, got)
	}
}

func TestSmallestUnit(t *testing.T) {
	assert.True(t, SmallestUnit("EUR").Equal(decimal.RequireFromString("0.01")))
	assert.True(t, SmallestUnit("JPY").Equal(decimal.NewFromInt(1)))
	assert.True(t, SmallestUnit("KWD").Equal(decimal.RequireFromString("0.001")))
}

func TestAmountAdd(t *testing.T) {
	a := New(decimal.NewFromInt(10), "EUR")
	b := New(decimal.NewFromInt(5), "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Value.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "EUR", sum.Currency)
}

func TestAmountAddCurrencyMismatch(t *testing.T) {
	a := New(decimal.NewFromInt(10), "EUR")
	b := New(decimal.NewFromInt(5), "USD")

	_, err := a.Add(b)
	require.Error(t, err)

	var mismatch *CurrencyMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "EUR", mismatch.Left)
	assert.Equal(t, "USD", mismatch.Right)
}

func TestAmountGreaterThan(t *testing.T) {
	a := New(decimal.NewFromInt(10), "EUR")
	b := New(decimal.NewFromInt(5), "EUR")

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	gt, err = b.GreaterThan(a)
	require.NoError(t, err)
	assert.False(t, gt)

	_, err = a.GreaterThan(New(decimal.Zero, "USD"))
	assert.Error(t, err)
}
