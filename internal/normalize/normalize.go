// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bom is the UTF-8 byte order mark some spreadsheet tools prepend to exports.
const bom = "\uFEFF"

// Cell cleans a raw tabular cell: strips a leading byte order mark,
// null bytes and surrounding whitespace.
func Cell(raw string) string {
	raw = strings.TrimPrefix(raw, bom)
	return strings.TrimSpace(sanitizeString(raw))
}

// Header cleans a column header for case-insensitive comparison.
func Header(raw string) string {
	return strings.ToLower(Cell(raw))
}

// TitleKey reduces a movie title to a stable lookup key.
// Unicode is NFC-composed, case is folded and inner whitespace collapsed,
// so "  The  Dark Knight" and "the dark knight" share a key.
// Punctuation is kept; titles are not fuzzy-matched.
func TitleKey(raw string) string {
	s := norm.NFC.String(sanitizeString(raw))
	s = strings.ToLower(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// sanitizeString removes null bytes, which some CSV exporters leave
// behind and which break JSON encoding downstream.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
