// Package recipe holds the data model shared by every stage of the import pipeline.
package recipe

import (
	"strings"
)

// Ingredient is one parsed ingredient line. Quantity keeps the source text.
type Ingredient struct {
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Name     string `json:"name"`
}

// Candidate is the partial recipe an extraction stage produces.
type Candidate struct {
	Title        string       `json:"title"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepMinutes  *int         `json:"prepMinutes,omitempty"`
	CookMinutes  *int         `json:"cookMinutes,omitempty"`
	Servings     *int         `json:"servings,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

// Usable reports whether the candidate has a title and at least one ingredient and instruction.
func (c *Candidate) Usable() bool {
	return c != nil && strings.TrimSpace(c.Title) != "" && len(c.Ingredients) > 0 && len(c.Instructions) > 0
}

// Empty reports whether nothing at all was extracted.
func (c *Candidate) Empty() bool {
	if c == nil {
		return true
	}
	return strings.TrimSpace(c.Title) == "" &&
		len(c.Ingredients) == 0 &&
		len(c.Instructions) == 0 &&
		c.PrepMinutes == nil &&
		c.CookMinutes == nil &&
		c.Servings == nil &&
		len(c.Tags) == 0
}

// AddTag appends tag unless an equal tag (case-insensitive) is already present.
func (c *Candidate) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, existing := range c.Tags {
		if strings.EqualFold(existing, tag) {
			return
		}
	}
	c.Tags = append(c.Tags, tag)
}

// IngredientNames returns the name field of every ingredient.
func (c *Candidate) IngredientNames() []string {
	names := make([]string, 0, len(c.Ingredients))
	for _, ing := range c.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// Recipe is the cleaned and categorized result of a successful import.
type Recipe struct {
	Title            string       `json:"title"`
	Ingredients      []Ingredient `json:"ingredients"`
	Instructions     []string     `json:"instructions"`
	PrepMinutes      *int         `json:"prepMinutes,omitempty"`
	CookMinutes      *int         `json:"cookMinutes,omitempty"`
	Servings         *int         `json:"servings,omitempty"`
	OriginalServings int          `json:"originalServings"`
	Tags             []string     `json:"tags,omitempty"`
	Category         Category     `json:"category"`
	SourceURL        string       `json:"sourceUrl"`
}

// IntPtr is a small helper for optional minute and servings fields.
func IntPtr(v int) *int {
	return &v
}
