package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		tags        []string
		ingredients []string
		want        recipe.Category
	}{
		{"exclusive dessert keyword", "Tarte Tatin aux pommes", nil, []string{"pommes", "sucre", "beurre"}, recipe.CategoryDessert},
		{"velouté", "Velouté de potiron", nil, []string{"potiron", "crème"}, recipe.CategoryStarter},
		{"gâteau", "Gâteau", nil, []string{"farine", "œufs"}, recipe.CategoryDessert},
		{"drink", "Mojito à la fraise", nil, []string{"menthe", "citron vert"}, recipe.CategoryDrink},
		{"negative keyword excludes dessert", "Quiche salée au saumon", nil, nil, recipe.CategoryMain},
		{"exclusive main dish", "Blanquette de veau à l'ancienne", nil, nil, recipe.CategoryMain},
		{"snack", "Houmous maison pour l'apéro", nil, nil, recipe.CategorySnack},
		{"tag only", "La recette de mamie", []string{"Dessert"}, nil, recipe.CategoryDessert},
		{"accents and ligatures folded", "OEUF MIMOSA", nil, nil, recipe.CategoryStarter},
		{"plural keyword", "Soupes d'hiver", nil, nil, recipe.CategoryStarter},
		{"ingredients add up", "Recette du dimanche", nil, []string{"poulet", "veau", "bœuf"}, recipe.CategoryMain},
		{"single ingredient below threshold", "Recette du dimanche", nil, []string{"poulet"}, recipe.CategoryOther},
		{"fruit salad falls back to dessert", "Salade de fruits", nil, nil, recipe.CategoryDessert},
		{"fallback main protein", "Lapin à la moutarde", nil, nil, recipe.CategoryMain},
		{"fallback snack", "Mini bouchées au fromage", nil, nil, recipe.CategorySnack},
		{"nothing matches", "Recette mystère", nil, nil, recipe.CategoryOther},
		{"empty", "", nil, nil, recipe.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title, tt.tags, tt.ingredients))
		})
	}
}

func TestScores(t *testing.T) {
	c := New(0)

	scores := c.Scores("Tarte Tatin aux pommes", nil, nil)
	assert.Equal(t, 23.0, scores[recipe.CategoryDessert])
	assert.Equal(t, -10.0, scores[recipe.CategoryDrink])
	assert.Equal(t, 0.0, scores[recipe.CategoryStarter])

	scores = c.Scores("Recette", nil, []string{"lait"})
	assert.Equal(t, 0.0, scores[recipe.CategoryDrink], "weight-1 keywords ignore ingredients")

	scores = c.Scores("Recette", []string{"Salade"}, []string{"salade verte"})
	assert.Equal(t, 5.0, scores[recipe.CategoryStarter])
}

func TestClassifyTieGoesToFirstCategory(t *testing.T) {
	// "gratin" (main) and "tarte" (dessert) both weigh 2
	assert.Equal(t, recipe.CategoryMain, Classify("Gratin tarte", nil, nil))
}

func TestClassifyMinScore(t *testing.T) {
	strict := New(30)
	assert.Equal(t, recipe.CategoryStarter, Classify("Velouté de potiron", nil, nil))
	assert.Equal(t, recipe.CategoryStarter, strict.Classify("Velouté de potiron", nil, nil), "fallback pattern still matches")
	assert.Equal(t, recipe.CategoryOther, strict.Classify("Blanquette", nil, nil))
}
