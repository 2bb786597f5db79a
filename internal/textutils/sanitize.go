// Package textutils provides text cleaning helpers shared by the row mappers
// and the CSV export.
package textutils

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText removes all HTML tags and attributes from s. Entities escaped
// by the policy are decoded again so "Rice & dhal" survives unchanged.
func SanitizeText(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// StripUnprintable removes non-printable characters, keeping tab, newline and
// carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// CleanCell is the standard treatment for free-text spreadsheet cells:
// unprintable runes and markup are dropped and the result is trimmed.
func CleanCell(s string) string {
	return strings.TrimSpace(SanitizeText(StripUnprintable(s)))
}

// SanitizeForFormulaInjection prepends a single quote if s starts with a
// character that spreadsheet applications evaluate as a formula.
func SanitizeForFormulaInjection(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
