package textparse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInstructionLength caps a single cleaned step, in runes.
const MaxInstructionLength = 1000

var stepMarkerRe = regexp.MustCompile(`(?i)^\s*(?:(?:étape|etape|step)\s*\d+\s*[:.)\-–]?\s*|\d{1,2}\s*[.):]\s+|[-–•*·▪]\s*)`)

// promoPatterns drop whole promotional sentences from a step.
var promoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cliquez\s+ici[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)abonnez[- ]vous[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)inscrivez[- ]vous[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)suivez[- ]nous[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)partagez\s+(?:cette|la|votre)\s+recette[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)d[ée]couvrez\s+(?:aussi|également|egalement|nos|notre|toutes)[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)retrouvez\s+(?:toutes\s+)?(?:nos|mes|la|cette)\s+recettes?[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)n['’]h[ée]sitez\s+pas\s+à\s+(?:laisser|noter|commenter|partager)[^.!?]*[.!?]?`),
	regexp.MustCompile(`(?i)\b(?:publicité|advertisement|sponsorisé)\b\s*:?`),
}

// StripStepMarker removes a leading "Étape 2 :", "3." or bullet from a step.
func StripStepMarker(s string) string {
	return strings.TrimSpace(stepMarkerRe.ReplaceAllString(s, ""))
}

// CleanInstruction strips step markers and promotional sentences, collapses
// whitespace, capitalizes the first letter and caps the length.
func CleanInstruction(s string) string {
	s = StripStepMarker(CollapseSpaces(s))
	for _, re := range promoPatterns {
		s = re.ReplaceAllString(s, "")
	}
	s = CollapseSpaces(s)
	s = capitalize(s)
	return truncateRunes(s, MaxInstructionLength)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

// Truncate caps s at max runes.
func Truncate(s string, max int) string {
	return truncateRunes(s, max)
}
