package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

const quicheHeadings = `<html><head><title>Quiche lorraine maison | Le blog de Lou</title></head><body>
<div class="post">
  <h1>Quiche lorraine maison</h1>
  <p>Une recette familiale.</p>
  <h2>Ingrédients</h2>
  <ul>
    <li>1 pâte brisée</li>
    <li>200 g de lardons</li>
    <li>3 œufs</li>
    <li>20 cl de crème fraîche</li>
  </ul>
  <h2>Préparation</h2>
  <p>Préchauffer le four à 180°C.</p>
  <p>Étaler la pâte dans un moule.</p>
  <p>Publicité</p>
  <p>Battre les œufs avec la crème et ajouter les lardons.</p>
  <h3>Préparation de la garniture</h3>
  <p>Verser sur la pâte et enfourner 35 minutes.</p>
  <h2>Commentaires</h2>
  <p>Super recette !</p>
</div>
<p>Temps de préparation : 15 min. Cuisson : 35 min. Pour 6 personnes.</p>
</body></html>`

func TestHeuristicHeadingWalk(t *testing.T) {
	s := NewHeuristicStrategy(HeuristicOptions{})
	res := s.Extract(mustPage(t, quicheHeadings, "https://blog.example.fr/quiche"))

	require.Equal(t, Usable, res.Kind)
	c := res.Candidate
	assert.Equal(t, "Quiche lorraine maison", c.Title)
	assert.Len(t, c.Ingredients, 4)
	assert.Equal(t, recipe.Ingredient{Quantity: "20", Unit: "cl", Name: "crème fraîche"}, c.Ingredients[3])
	assert.Equal(t, []string{
		"Préchauffer le four à 180°C.",
		"Étaler la pâte dans un moule.",
		"Battre les œufs avec la crème et ajouter les lardons.",
		"Verser sur la pâte et enfourner 35 minutes.",
	}, c.Instructions)
	require.NotNil(t, c.PrepMinutes)
	require.NotNil(t, c.CookMinutes)
	require.NotNil(t, c.Servings)
	assert.Equal(t, 15, *c.PrepMinutes)
	assert.Equal(t, 35, *c.CookMinutes)
	assert.Equal(t, 6, *c.Servings)
	assert.Equal(t, 90, res.Score)
}

const crepesSelectors = `<html><body>
<h1 class="entry-title">Crêpes faciles</h1>
<ul class="wprm-recipe-ingredients">
  <li class="wprm-recipe-ingredient">250 g de farine</li>
  <li class="wprm-recipe-ingredient">4 œufs</li>
  <li class="wprm-recipe-ingredient">50 cl de lait</li>
  <li class="wprm-recipe-ingredient">1 pincée de sel</li>
  <li class="wprm-recipe-ingredient">50 g de beurre fondu</li>
</ul>
<ul class="wprm-recipe-instructions">
  <li class="wprm-recipe-instruction"><div>Mélanger la farine et les œufs.</div></li>
  <li class="wprm-recipe-instruction"><div>Ajouter le lait petit à petit.</div></li>
  <li class="wprm-recipe-instruction"><div>Cuire dans une poêle chaude.</div></li>
</ul>
<span class="wprm-recipe-prep_time">10 min</span>
</body></html>`

func TestHeuristicSelectors(t *testing.T) {
	res := NewHeuristicStrategy(DefaultHeuristicOptions()).Extract(mustPage(t, crepesSelectors, "https://example.com/crepes"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "Crêpes faciles", res.Candidate.Title)
	assert.Len(t, res.Candidate.Ingredients, 5)
	assert.Equal(t, recipe.Ingredient{Quantity: "1", Unit: "pincée", Name: "sel"}, res.Candidate.Ingredients[3])
	assert.Len(t, res.Candidate.Instructions, 3)
	require.NotNil(t, res.Candidate.PrepMinutes)
	assert.Equal(t, 10, *res.Candidate.PrepMinutes)
	assert.GreaterOrEqual(t, res.Score, 90)
}

func TestHeuristicBelowThreshold(t *testing.T) {
	html := `<html><body><h1>Soupe</h1>
<h2>Ingrédients</h2><ul><li>eau</li></ul>
<h2>Préparation</h2><p>Bouillir.</p></body></html>`

	res := NewHeuristicStrategy(DefaultHeuristicOptions()).Extract(mustPage(t, html, "https://example.com/soupe"))

	assert.Equal(t, NotFound, res.Kind)
	assert.Nil(t, res.Candidate)
	assert.Equal(t, 20, res.Score)
}

func TestHeuristicCapsLists(t *testing.T) {
	html := `<h1>Grande liste</h1><ul class="ingredients">`
	for i := 0; i < 60; i++ {
		html += `<li>` + string(rune('a'+i%26)) + string(rune('a'+i/26)) + ` ingrédient</li>`
	}
	html += `</ul><ol class="instructions">`
	for i := 0; i < 40; i++ {
		html += `<li>Étape numéro ` + string(rune('A'+i%26)) + string(rune('A'+i/26)) + `</li>`
	}
	html += `</ol>`

	res := NewHeuristicStrategy(DefaultHeuristicOptions()).Extract(mustPage(t, html, "https://example.com/liste"))

	require.Equal(t, Usable, res.Kind)
	assert.Len(t, res.Candidate.Ingredients, 50)
	assert.Len(t, res.Candidate.Instructions, 30)
}

func TestExtractTitleFallsBackToTitleTag(t *testing.T) {
	page := mustPage(t, `<html><head><title>Poulet basquaise - Cuisine du Sud</title></head><body><p>x</p></body></html>`, "https://example.com/")
	assert.Equal(t, "Poulet basquaise", extractTitle(page.Doc))

	page = mustPage(t, `<html><head><title>abc</title></head><body><h1>Ok</h1></body></html>`, "https://example.com/")
	assert.Equal(t, "", extractTitle(page.Doc))
}

func TestConfidence(t *testing.T) {
	ptr := recipe.IntPtr
	ings := func(n int) []recipe.Ingredient { return make([]recipe.Ingredient, n) }
	steps := func(n int) []string { return make([]string, n) }

	tests := []struct {
		name string
		c    *recipe.Candidate
		want int
	}{
		{"nil", nil, 0},
		{"minimal", &recipe.Candidate{Title: "Soupe", Ingredients: ings(1), Instructions: steps(1)}, 20},
		{"long title", &recipe.Candidate{Title: "Soupe froide", Ingredients: ings(1), Instructions: steps(1)}, 45},
		{"three and two", &recipe.Candidate{Title: "Soupe froide", Ingredients: ings(3), Instructions: steps(2)}, 70},
		{"full", &recipe.Candidate{Title: "Soupe froide", Ingredients: ings(5), Instructions: steps(3), PrepMinutes: ptr(1), CookMinutes: ptr(2), Servings: ptr(4)}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Confidence(tt.c))
		})
	}
}

func TestMatchesHeading(t *testing.T) {
	assert.True(t, matchesHeading("Ingrédients (pour 4 personnes)", ingredientHeadings))
	assert.True(t, matchesHeading("LES ÉTAPES :", instructionHeadings))
	assert.False(t, matchesHeading("Recettes similaires", instructionHeadings))
}
