package extractor

import (
	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

const maxMetadataScore = 10

// Confidence scores how much a heuristic candidate looks like a real recipe,
// from 0 to 100.
func Confidence(c *recipe.Candidate) int {
	if c == nil {
		return 0
	}

	score := 0
	if runeLen(c.Title) > 5 {
		score += 25
	}

	switch n := len(c.Ingredients); {
	case n >= 5:
		score += 35
	case n >= 3:
		score += 25
	case n >= 1:
		score += 10
	}

	switch n := len(c.Instructions); {
	case n >= 3:
		score += 30
	case n >= 2:
		score += 20
	case n >= 1:
		score += 10
	}

	meta := 0
	if c.PrepMinutes != nil {
		meta += 3
	}
	if c.CookMinutes != nil {
		meta += 3
	}
	if c.Servings != nil {
		meta += 4
	}
	return score + min(meta, maxMetadataScore)
}
