package genre

import "strings"

// Separator joins genre labels inside a normalized genre string.
const Separator = "|"

// sourceSeparator is the separator used by the raw catalog files.
const sourceSeparator = ", "

// FromSource normalizes a raw genre cell into pipe-delimited form.
// Only the exact ", " separator is rewritten; "Action,Drama" or
// "Action / Drama" are left as a single label.
func FromSource(raw string) string {
	return strings.ReplaceAll(raw, sourceSeparator, Separator)
}

// Split returns the labels of a pipe-delimited genre string.
func Split(genres string) []string {
	if genres == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(genres, Separator) {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// Matcher reports whether a genre string mentions any of a fixed set of
// genre labels. Matching is a case-insensitive substring test against the
// whole string, so "Drama" also matches "Docudrama".
type Matcher struct {
	needles []string
}

// NewMatcher builds a Matcher for the given labels. Empty labels are ignored.
func NewMatcher(labels []string) *Matcher {
	m := &Matcher{needles: make([]string, 0, len(labels))}
	for _, l := range labels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			m.needles = append(m.needles, l)
		}
	}
	return m
}

// Empty reports whether the matcher has no labels and so matches nothing.
func (m *Matcher) Empty() bool {
	return len(m.needles) == 0
}

// Match reports whether genres contains any of the matcher's labels.
func (m *Matcher) Match(genres string) bool {
	if genres == "" || len(m.needles) == 0 {
		return false
	}
	lower := strings.ToLower(genres)
	for _, n := range m.needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
