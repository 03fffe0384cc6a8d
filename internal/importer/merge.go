package importer

import (
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

// minMergeCount is the list length a source must reach to win a field.
const minMergeCount = 2

// Merge combines candidates given in priority order. For ingredients and
// instructions the first source holding at least two items wins, falling back
// to the first non-empty list. Scalars come from the first source that has
// them and tags are unioned.
func Merge(sources ...*recipe.Candidate) *recipe.Candidate {
	out := &recipe.Candidate{}

	for _, src := range sources {
		if src == nil {
			continue
		}
		if out.Title == "" && strings.TrimSpace(src.Title) != "" {
			out.Title = src.Title
		}
		if out.PrepMinutes == nil {
			out.PrepMinutes = src.PrepMinutes
		}
		if out.CookMinutes == nil {
			out.CookMinutes = src.CookMinutes
		}
		if out.Servings == nil {
			out.Servings = src.Servings
		}
		for _, tag := range src.Tags {
			out.AddTag(tag)
		}
	}

	out.Ingredients = pickList(sources, func(c *recipe.Candidate) []recipe.Ingredient { return c.Ingredients })
	out.Instructions = pickList(sources, func(c *recipe.Candidate) []string { return c.Instructions })
	return out
}

func pickList[T any](sources []*recipe.Candidate, field func(*recipe.Candidate) []T) []T {
	var fallback []T
	for _, src := range sources {
		if src == nil {
			continue
		}
		list := field(src)
		if len(list) >= minMergeCount {
			return list
		}
		if fallback == nil && len(list) > 0 {
			fallback = list
		}
	}
	return fallback
}

// complete reports whether c has enough ingredients and instructions to stop
// looking for more sources.
func complete(c *recipe.Candidate) bool {
	return len(c.Ingredients) >= minMergeCount && len(c.Instructions) >= minMergeCount
}

// enrich backfills a usable structured-data candidate from a site rule. The
// site rule runs lazily and at most once, only when a gap is detected.
func enrich(c *recipe.Candidate, site func() *recipe.Candidate) *recipe.Candidate {
	missingQuantities := len(c.Ingredients) > 0 && !anyQuantity(c.Ingredients)
	missingTimes := c.PrepMinutes == nil || c.CookMinutes == nil
	singleStep := len(c.Instructions) == 1

	if !missingQuantities && !missingTimes && !singleStep {
		return c
	}

	s := site()
	if s == nil {
		return c
	}

	out := *c
	if missingQuantities && anyQuantity(s.Ingredients) {
		out.Ingredients = s.Ingredients
	}
	if out.PrepMinutes == nil {
		out.PrepMinutes = s.PrepMinutes
	}
	if out.CookMinutes == nil {
		out.CookMinutes = s.CookMinutes
	}
	if singleStep && len(s.Instructions) >= minMergeCount {
		out.Instructions = s.Instructions
	}
	return &out
}

func anyQuantity(ings []recipe.Ingredient) bool {
	for _, ing := range ings {
		if strings.TrimSpace(ing.Quantity) != "" {
			return true
		}
	}
	return false
}
