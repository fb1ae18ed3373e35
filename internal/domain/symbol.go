package domain

import (
	"regexp"
	"strings"
)

var symbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// NormalizeSymbol trims and uppercases a symbol before any lookup.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether an already normalized symbol is well formed.
func ValidSymbol(s string) bool {
	return symbolRegex.MatchString(s)
}
