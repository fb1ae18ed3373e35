package domain

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"
)

func TestProperty_ParseCentsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(-99_999_999_99, 99_999_999_99).Draw(t, "cents")

		s := CentsToDecimal(cents).StringFixed(2)
		got, err := ParseCents(s)
		if err != nil {
			t.Fatalf("ParseCents(%q) returned error for value derived from %d cents: %v", s, cents, err)
		}
		if got != cents {
			t.Fatalf("round-trip failed: cents=%d → %q → cents=%d", cents, s, got)
		}
	})
}

func TestProperty_DecimalCentsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(-99_999_999_99, 99_999_999_99).Draw(t, "cents")

		if got := DecimalToCents(CentsToDecimal(cents)); got != cents {
			t.Fatalf("DecimalToCents(CentsToDecimal(%d)) = %d", cents, got)
		}
	})
}

func TestProperty_ParseCentsRejectsExcessPrecision(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		whole := rapid.Int64Range(0, 999_999).Draw(t, "whole")
		frac := rapid.IntRange(0, 99).Draw(t, "frac")
		d3 := rapid.IntRange(1, 9).Draw(t, "d3") // must be non-zero

		s := strconv.FormatInt(whole, 10) + "." + leftPad2(frac) + strconv.Itoa(d3)
		if _, err := ParseCents(s); err == nil {
			t.Fatalf("ParseCents(%q) should reject value with >2 decimal places", s)
		}
	})
}

func leftPad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
