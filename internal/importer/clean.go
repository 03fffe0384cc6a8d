package importer

import (
	"fmt"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/sanitize"
	"github.com/marcosevegrand/recipe-import/internal/textparse"
)

const (
	maxIngredients  = 50
	maxInstructions = 100
	maxTags         = 20
	maxFieldLength  = 200
	maxTagLength    = 60
)

// clean sanitizes every free-text field of c and builds the recipe skeleton.
// The category is left empty.
func (im *Importer) clean(c *recipe.Candidate, sourceURL string) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		Title:       im.sanitizer.CleanTitle(c.Title),
		PrepMinutes: nonNegative(c.PrepMinutes),
		CookMinutes: nonNegative(c.CookMinutes),
		Servings:    positive(c.Servings),
		SourceURL:   sourceURL,
	}
	if r.Servings != nil {
		r.OriginalServings = *r.Servings
	}

	for _, ing := range c.Ingredients {
		cleaned := recipe.Ingredient{
			Quantity: sanitize.TruncateText(im.sanitizer.Text(ing.Quantity), maxFieldLength),
			Unit:     sanitize.TruncateText(im.sanitizer.Text(ing.Unit), maxFieldLength),
			Name:     sanitize.TruncateText(im.sanitizer.Text(ing.Name), maxFieldLength),
		}
		if cleaned.Name == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, cleaned)
		if len(r.Ingredients) == maxIngredients {
			break
		}
	}

	for _, step := range c.Instructions {
		text := im.sanitizer.Text(step)
		if im.opts.RemoveFluff {
			text = textparse.RemoveFluff(text)
		}
		if text = textparse.CleanInstruction(text); text != "" {
			r.Instructions = append(r.Instructions, text)
		}
		if len(r.Instructions) == maxInstructions {
			break
		}
	}

	seen := map[string]struct{}{}
	for _, tag := range c.Tags {
		tag = sanitize.TruncateText(im.sanitizer.Text(tag), maxTagLength)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		r.Tags = append(r.Tags, tag)
		if len(r.Tags) == maxTags {
			break
		}
	}

	switch {
	case r.Title == "":
		return nil, fmt.Errorf("%w: title empty after cleaning", recipe.ErrExtractionFailed)
	case len(r.Ingredients) == 0:
		return nil, fmt.Errorf("%w: no ingredient left after cleaning", recipe.ErrExtractionFailed)
	case len(r.Instructions) == 0:
		return nil, fmt.Errorf("%w: no instruction left after cleaning", recipe.ErrExtractionFailed)
	}
	return r, nil
}

func nonNegative(v *int) *int {
	if v == nil || *v < 0 {
		return nil
	}
	return recipe.IntPtr(*v)
}

func positive(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	return recipe.IntPtr(*v)
}
