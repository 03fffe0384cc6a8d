package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line string
		want recipe.Ingredient
	}{
		{"250 g de farine", recipe.Ingredient{Quantity: "250", Unit: "g", Name: "farine"}},
		{"250g de farine", recipe.Ingredient{Quantity: "250", Unit: "g", Name: "farine"}},
		{"2 gousses d'ail", recipe.Ingredient{Quantity: "2", Unit: "gousse", Name: "ail"}},
		{"1 cuillère à soupe de sucre", recipe.Ingredient{Quantity: "1", Unit: "c. à s.", Name: "sucre"}},
		{"1 c. à café de sel", recipe.Ingredient{Quantity: "1", Unit: "c. à c.", Name: "sel"}},
		{"2 litres d'eau", recipe.Ingredient{Quantity: "2", Unit: "l", Name: "eau"}},
		{"1,5 kg de pommes de terre", recipe.Ingredient{Quantity: "1,5", Unit: "kg", Name: "pommes de terre"}},
		{"2 à 3 œufs", recipe.Ingredient{Quantity: "2.5", Name: "œufs"}},
		{"2-3 cuillères à soupe de crème", recipe.Ingredient{Quantity: "2.5", Unit: "c. à s.", Name: "crème"}},
		{"un peu de sel", recipe.Ingredient{Unit: "un peu", Name: "sel"}},
		{"une pincée de poivre", recipe.Ingredient{Unit: "une pincée", Name: "poivre"}},
		{"quelques gouttes de vanille", recipe.Ingredient{Unit: "quelques gouttes", Name: "vanille"}},
		{"quelques radis", recipe.Ingredient{Unit: "quelques", Name: "radis"}},
		{"3 œufs", recipe.Ingredient{Quantity: "3", Name: "œufs"}},
		{"2 carottes", recipe.Ingredient{Quantity: "2", Name: "carottes"}},
		{"½ Orange", recipe.Ingredient{Quantity: "0.5", Name: "Orange"}},
		{"1½ tasse de lait", recipe.Ingredient{Quantity: "1.5", Unit: "tasse", Name: "lait"}},
		{"1/2 citron", recipe.Ingredient{Quantity: "0.5", Name: "citron"}},
		{"- 100 g de beurre", recipe.Ingredient{Quantity: "100", Unit: "g", Name: "beurre"}},
		{"un reste de pâte", recipe.Ingredient{Name: "un reste de pâte"}},
		{"Sel, poivre", recipe.Ingredient{Name: "Sel, poivre"}},
		{"   ", recipe.Ingredient{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientLine(tt.line))
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]string{
		"grammes":          "g",
		"Gr":               "g",
		"cuillères à soupe": "c. à s.",
		"c.à.s.":           "c. à s.",
		"c. à s":           "c. à s.",
		"CL":               "cl",
		"boites":           "boîte",
		"poêlée":           "poêlée",
		" pincées ":        "pincée",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeUnit(in), in)
	}
}

func TestNormalizeFractions(t *testing.T) {
	tests := map[string]string{
		"½":           "0.5",
		"1½":          "1.5",
		"1 ½ verre":   "1.5 verre",
		"1/3 de tasse": "0.33 de tasse",
		"2 3/4":       "2.75",
		"1/0":         "1/0",
		"3⁄4":         "0.75",
		"sans chiffre": "sans chiffre",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeFractions(in), in)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "preparation", Fold("Préparation"))
	assert.Equal(t, "oeufs a la creme", Fold("Œufs à la crème"))
	assert.Equal(t, "veloute", Fold("VELOUTÉ"))
}
