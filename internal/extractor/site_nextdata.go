package extractor

import (
	"encoding/json"
	"sort"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const maxPropsDepth = 14

var (
	ingredientKeys = []string{"ingredients", "ingredientGroups", "recipeIngredient"}
	stepKeys       = []string{"steps", "preparationSteps", "instructions", "recipeInstructions"}
)

// nextDataRule reads the __NEXT_DATA__ payload of Next.js sites and walks the
// props tree for the first object that carries both ingredients and steps.
func nextDataRule(page *Page) *recipe.Candidate {
	raw := page.Doc.Find(`script#__NEXT_DATA__`).First().Text()
	if raw == "" {
		return nil
	}

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	node := findRecipeProps(data, 0)
	if node == nil {
		return nil
	}
	if _, ok := node["recipeIngredient"]; ok {
		return candidateFromSchema(node)
	}
	return candidateFromProps(node)
}

func findRecipeProps(v any, depth int) map[string]any {
	if depth > maxPropsDepth {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		if hasArray(t, ingredientKeys) && hasArray(t, stepKeys) {
			return t
		}
		// map order is random; walk keys sorted for a stable pick
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if node := findRecipeProps(t[k], depth+1); node != nil {
				return node
			}
		}
	case []any:
		for _, item := range t {
			if node := findRecipeProps(item, depth+1); node != nil {
				return node
			}
		}
	}
	return nil
}

func hasArray(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if arr, ok := m[k].([]any); ok && len(arr) > 0 {
			return true
		}
	}
	return false
}

func candidateFromProps(m map[string]any) *recipe.Candidate {
	c := &recipe.Candidate{
		Title: firstString(m, "title", "name"),
	}

	for _, item := range propsIngredientItems(m) {
		if ing, ok := propsIngredient(item); ok {
			c.Ingredients = append(c.Ingredients, ing)
		}
	}

	for _, key := range stepKeys {
		steps, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, step := range steps {
			if sm, ok := step.(map[string]any); ok {
				if text := firstString(sm, "text", "content", "description", "instruction", "html"); text != "" {
					for _, line := range splitInstructionText(text) {
						c.Instructions = append(c.Instructions, stripInlineTags(line))
					}
					continue
				}
			}
			c.Instructions = append(c.Instructions, flattenInstructions(step)...)
		}
		if len(c.Instructions) > 0 {
			break
		}
	}
	c.Instructions = cleanSteps(c.Instructions)

	prep := firstMinutes(m, "preparationTime", "prepTime", "prepTimeMinutes")
	cook := firstMinutes(m, "cookingTime", "cookTime", "bakingTime", "cookTimeMinutes")
	total := firstMinutes(m, "totalTime", "totalTimeMinutes")
	c.PrepMinutes, c.CookMinutes = textparse.DeriveTimes(prep, cook, total)

	for _, key := range []string{"servings", "nbPersons", "serving", "people", "portions", "yield", "recipeYield"} {
		if n := servingsValue(m[key]); n != nil {
			c.Servings = n
			break
		}
	}

	for _, key := range []string{"recipeCategory", "category", "dishType", "cuisine"} {
		for _, tag := range stringList(m[key]) {
			c.AddTag(tag)
		}
	}
	return c
}

func propsIngredientItems(m map[string]any) []any {
	if groups, ok := m["ingredientGroups"].([]any); ok {
		var items []any
		for _, g := range groups {
			gm, ok := g.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range []string{"items", "ingredients"} {
				if list, ok := gm[key].([]any); ok {
					items = append(items, list...)
				}
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	items, _ := m["ingredients"].([]any)
	return items
}

func propsIngredient(item any) (recipe.Ingredient, bool) {
	switch t := item.(type) {
	case string:
		ing := textparse.ParseIngredientLine(t)
		return ing, ing.Name != ""
	case map[string]any:
		name := firstString(t, "name", "label", "ingredientName", "title")
		if name == "" {
			if text := firstString(t, "displayText", "text"); text != "" {
				ing := textparse.ParseIngredientLine(text)
				return ing, ing.Name != ""
			}
			return recipe.Ingredient{}, false
		}

		unit := firstString(t, "unit", "unitName", "measure")
		if um, ok := t["unit"].(map[string]any); ok {
			unit = firstString(um, "name", "label", "abbreviation")
		}
		qty := ""
		for _, key := range []string{"quantity", "qt", "amount", "qty"} {
			switch q := t[key].(type) {
			case float64:
				qty = textparse.FormatNumber(q)
			case string:
				qty = textparse.CollapseSpaces(q)
			}
			if qty != "" {
				break
			}
		}
		if unit != "" {
			unit = textparse.NormalizeUnit(unit)
		}
		return recipe.Ingredient{Quantity: qty, Unit: unit, Name: textparse.CollapseSpaces(name)}, true
	}
	return recipe.Ingredient{}, false
}

func firstMinutes(m map[string]any, keys ...string) *int {
	for _, k := range keys {
		if v := minutesValue(m[k]); v != nil {
			return v
		}
	}
	return nil
}

func cleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = textparse.StripStepMarker(textparse.CollapseSpaces(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
