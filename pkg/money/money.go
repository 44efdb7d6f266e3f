package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var centsFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal money string ("249.99") into integer cents.
// Amounts must be non-negative and carry at most two fractional digits.
func ParseAmount(value string) (int64, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	if amount.Exponent() < -2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", value)
	}
	cents := amount.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", value)
	}
	return cents.IntPart(), nil
}

// FormatCents renders integer cents as a two-decimal string.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}

// Float64Cents renders integer cents as a float for legacy payloads.
func Float64Cents(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(centsFactor).Float64()
	return f
}
