// Package textparse turns free recipe text into structured values: ingredient lines,
// units, durations, servings and cleaned instruction steps.
package textparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ligatures = strings.NewReplacer("œ", "oe", "Œ", "oe", "æ", "ae", "Æ", "ae", "’", "'")

// Fold lower-cases s, expands ligatures and strips diacritics so that
// "Préparation" and "preparation" compare equal.
func Fold(s string) string {
	s = ligatures.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// CollapseSpaces replaces every whitespace run with one space and trims the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
