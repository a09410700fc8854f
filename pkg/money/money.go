package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount pairs a decimal value with its currency code. All monetary values
// in this module travel as Amounts so that currency mismatches surface as
// errors instead of silent coercions.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// New creates an Amount in the given currency.
func New(value decimal.Decimal, currency string) Amount {
	return Amount{Value: value, Currency: currency}
}

// Zero returns a zero Amount in the given currency.
func Zero(currency string) Amount {
	return Amount{Value: decimal.Zero, Currency: currency}
}

// CurrencyMismatchError reports an operation that mixed currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// minorUnits lists ISO 4217 exponents that differ from the default of 2.
func minorUnits() map[string]int32 {
	return map[string]int32{
		"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
		"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0,
		"VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
		"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	}
}

// MinorUnits returns the number of minor-unit digits for a currency code.
// Unknown codes default to 2.
func MinorUnits(currency string) int32 {
	if exp, ok := minorUnits()[currency]; ok {
		return exp
	}
	return 2
}

// RoundHalfUp scales a value to the currency's minor-unit precision using
// round-half-up. decimal.Round rounds half away from zero, which is
// identical to half-up for the non-negative amounts handled here.
func RoundHalfUp(value decimal.Decimal, currency string) decimal.Decimal {
	return value.Round(MinorUnits(currency))
}

// SmallestUnit returns one minor unit of the currency, e.g. 0.01 for EUR
// and 1 for JPY. Used to decide whether two amount ranges are contiguous.
func SmallestUnit(currency string) decimal.Decimal {
	return decimal.New(1, -MinorUnits(currency))
}

// Add returns the sum of two Amounts in the same currency.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, &CurrencyMismatchError{Left: a.Currency, Right: b.Currency}
	}
	return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency}, nil
}

// GreaterThan reports whether a exceeds b, failing on mixed currencies.
func (a Amount) GreaterThan(b Amount) (bool, error) {
	if a.Currency != b.Currency {
		return false, &CurrencyMismatchError{Left: a.Currency, Right: b.Currency}
	}
	return a.Value.GreaterThan(b.Value), nil
}

// String renders the amount at its currency's minor-unit precision.
func (a Amount) String() string {
	return a.Value.StringFixed(MinorUnits(a.Currency)) + " " + a.Currency
}
