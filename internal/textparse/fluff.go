package textparse

import (
	"regexp"
)

// fluffPatterns match personal anecdote sentences that blogs mix into steps.
var fluffPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)[^.!?]*\b(?:ma\s+grand-m[èe]re|mon\s+grand-p[èe]re|ma\s+m[èe]re|mon\s+p[èe]re|mes\s+enfants|mon\s+mari|ma\s+femme|mon\s+chéri|en\s+famille)\b[^.!?]*[.!?]\s*`),
	regexp.MustCompile(`(?i)[^.!?]*\b(?:quand\s+j['’][ée]tais|je\s+me\s+souviens|souvenirs?\s+d['’]enfance|chez\s+nous\s+on)\b[^.!?]*[.!?]\s*`),
	regexp.MustCompile(`(?i)[^.!?]*\b(?:j['’]adore|personnellement|je\s+vous\s+(?:propose|partage)|c['’]est\s+ma\s+recette\s+pr[ée]f[ée]r[ée]e)\b[^.!?]*[.!?]\s*`),
}

// RemoveFluff drops anecdotal sentences from a step. A step made only of
// anecdotes is returned unchanged.
func RemoveFluff(s string) string {
	out := s
	for _, re := range fluffPatterns {
		out = re.ReplaceAllString(out, "")
	}
	out = CollapseSpaces(out)
	if out == "" {
		return CollapseSpaces(s)
	}
	return out
}

// ContainsFluff reports whether s has at least one anecdotal sentence.
func ContainsFluff(s string) bool {
	for _, re := range fluffPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
