// Package classifier assigns a category to a cleaned recipe by scoring its
// title, tags and ingredient names against weighted French keyword tables.
package classifier

import (
	"regexp"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const (
	// DefaultMinScore is the lowest winning score accepted before the title
	// fallback patterns take over.
	DefaultMinScore = 2

	titleMultiplier      = 3
	tagMultiplier        = 2
	exclusiveTitleBonus  = 5
	ingredientMultiplier = 0.5
	minIngredientWeight  = 2
	negativeScore        = -10
)

type compiledKeyword struct {
	keyword
	re *regexp.Regexp
}

type compiledRule struct {
	category recipe.Category
	keywords []compiledKeyword
	negative []*regexp.Regexp
}

// Classifier scores recipes against the keyword tables. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	rules    []compiledRule
	minScore float64
	fallback *fallbackMatcher
}

// New returns a classifier. A minScore of zero or less selects DefaultMinScore.
func New(minScore int) *Classifier {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	c := &Classifier{
		minScore: float64(minScore),
		fallback: newFallbackMatcher(),
	}
	for _, r := range defaultRules {
		cr := compiledRule{category: r.category}
		for _, kw := range r.keywords {
			cr.keywords = append(cr.keywords, compiledKeyword{keyword: kw, re: phraseRe(kw.phrase)})
		}
		for _, neg := range r.negative {
			cr.negative = append(cr.negative, phraseRe(neg))
		}
		c.rules = append(c.rules, cr)
	}
	return c
}

// phraseRe matches a folded phrase as whole words, tolerating French plurals.
func phraseRe(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(textparse.Fold(phrase)) + `(?:s|x|es)?\b`)
}

var defaultClassifier = New(DefaultMinScore)

// Classify uses the default thresholds.
func Classify(title string, tags, ingredientNames []string) recipe.Category {
	return defaultClassifier.Classify(title, tags, ingredientNames)
}

// Classify returns the best scoring category, the first fallback pattern
// matching the title, or CategoryOther.
func (c *Classifier) Classify(title string, tags, ingredientNames []string) recipe.Category {
	scores := c.Scores(title, tags, ingredientNames)

	best := recipe.CategoryOther
	bestScore := 0.0
	for _, r := range c.rules {
		if s := scores[r.category]; best == recipe.CategoryOther || s > bestScore {
			best, bestScore = r.category, s
		}
	}

	if bestScore < c.minScore {
		return c.fallback.match(textparse.Fold(title))
	}
	return best
}

// Scores returns the signed score of every scored category.
func (c *Classifier) Scores(title string, tags, ingredientNames []string) map[recipe.Category]float64 {
	foldedTitle := textparse.Fold(title)
	foldedTags := foldAll(tags)
	foldedIngredients := foldAll(ingredientNames)

	scores := make(map[recipe.Category]float64, len(c.rules))
	for _, r := range c.rules {
		if anyMatch(r.negative, foldedTitle, foldedTags) {
			scores[r.category] = negativeScore
			continue
		}

		score := 0.0
		for _, kw := range r.keywords {
			if kw.re.MatchString(foldedTitle) {
				score += float64(kw.weight * titleMultiplier)
				if kw.exclusive {
					score += exclusiveTitleBonus
				}
			}
			if kw.re.MatchString(foldedTags) {
				score += float64(kw.weight * tagMultiplier)
			}
			if kw.weight >= minIngredientWeight && kw.re.MatchString(foldedIngredients) {
				score += float64(kw.weight) * ingredientMultiplier
			}
		}
		scores[r.category] = score
	}
	return scores
}

func anyMatch(res []*regexp.Regexp, texts ...string) bool {
	for _, re := range res {
		for _, text := range texts {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// foldAll joins items with a separator no keyword spans.
func foldAll(items []string) string {
	folded := make([]string, 0, len(items))
	for _, item := range items {
		folded = append(folded, textparse.Fold(item))
	}
	return strings.Join(folded, " | ")
}
