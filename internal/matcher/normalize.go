package matcher

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims surrounding whitespace and lower-cases s without
// locale-specific rules. A blank input yields "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A Caser keeps internal state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// Tokenize splits s on runs of whitespace. It never returns empty tokens.
func Tokenize(s string) []string {
	return strings.Fields(s)
}
