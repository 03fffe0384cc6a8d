package extractor

import (
	"strconv"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

// candidateFromSchema maps a schema.org Recipe object onto a candidate.
func candidateFromSchema(m map[string]any) *recipe.Candidate {
	c := &recipe.Candidate{
		Title: firstString(m, "name", "headline"),
	}

	lines := stringList(m["recipeIngredient"])
	if len(lines) == 0 {
		lines = stringList(m["ingredients"])
	}
	c.Ingredients = parseIngredients(lines)
	c.Instructions = flattenInstructions(m["recipeInstructions"])

	prep := minutesValue(m["prepTime"])
	cook := minutesValue(m["cookTime"])
	total := minutesValue(m["totalTime"])
	c.PrepMinutes, c.CookMinutes = textparse.DeriveTimes(prep, cook, total)

	c.Servings = servingsValue(m["recipeYield"])
	if c.Servings == nil {
		c.Servings = servingsValue(m["yield"])
	}

	for _, key := range []string{"recipeCategory", "recipeCuisine"} {
		for _, tag := range stringList(m[key]) {
			c.AddTag(tag)
		}
	}

	return c
}

// isType reports whether a JSON-LD @type value names want, bare or as an IRI.
func isType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		name := t
		if i := strings.LastIndexAny(name, "/:#"); i >= 0 {
			name = name[i+1:]
		}
		return strings.EqualFold(strings.TrimSpace(name), want)
	case []any:
		for _, item := range t {
			if isType(item, want) {
				return true
			}
		}
	}
	return false
}

// stringValue flattens the scalar shapes JSON-LD uses for text.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return firstString(t, "@value", "text", "name")
	case []any:
		for _, item := range t {
			if s := stringValue(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// stringList accepts a string (one item per line) or an array of values.
func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	case []any:
		for _, item := range t {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
	case map[string]any:
		if s := stringValue(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// minutesValue reads an ISO duration, a human duration or a plain number of minutes.
func minutesValue(v any) *int {
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return nil
		}
		return recipe.IntPtr(int(t))
	case string:
		if m, ok := textparse.ParseISODuration(t); ok {
			return &m
		}
		if m, ok := textparse.ParseTimeText(t); ok {
			return &m
		}
	case []any:
		for _, item := range t {
			if m := minutesValue(item); m != nil {
				return m
			}
		}
	case map[string]any:
		return minutesValue(t["@value"])
	}
	return nil
}

// servingsValue takes the first integer of a yield, which may be a number,
// a string like "6 personnes" or an array of either.
func servingsValue(v any) *int {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return nil
		}
		return recipe.IntPtr(int(t))
	case string:
		if n, ok := textparse.ParseServings(t); ok {
			return &n
		}
	case []any:
		for _, item := range t {
			if n := servingsValue(item); n != nil {
				return n
			}
		}
	case map[string]any:
		return servingsValue(t["@value"])
	}
	return nil
}
