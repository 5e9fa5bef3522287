// Package normalize canonicalizes release titles and artist names so that two
// catalogs with different punctuation and casing conventions can be compared.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Text returns the comparison form of s: lower-cased, hyphens turned into
// spaces, every rune that is not a letter, digit or space removed, whitespace
// collapsed and trimmed. Text is total and idempotent; "" yields "".
func Text(s string) string {
	if s == "" {
		return ""
	}

	// Compose first so "é" written as e + U+0301 survives as a single letter.
	s = norm.NFC.String(s)
	s = cases.Lower(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '-':
			b.WriteByte(' ')
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Words returns the distinct words of Text(s) in first-seen order.
func Words(s string) []string {
	fields := strings.Fields(Text(s))
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Keywords splits a space- or comma-delimited keyword list into lower-cased
// tokens, dropping empties and duplicates.
func Keywords(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = cases.Lower(language.Und).String(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
