package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseCents converts a decimal dollar string such as "10000.00" to int64
// cents. More than 2 decimal places of precision is rejected.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid monetary value %q", s)
	}
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("monetary values must have at most 2 decimal places")
	}
	return d.Shift(2).IntPart(), nil
}

// CentsToDecimal returns c as an exact dollar decimal.
func CentsToDecimal(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// DecimalToCents rounds d to 2 decimal places (half away from zero) and
// returns it as cents.
func DecimalToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// CentsToDollars converts an int64 cents value to a float64 dollar amount.
func CentsToDollars(c int64) float64 {
	return float64(c) / 100.0
}
