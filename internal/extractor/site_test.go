package extractor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

const marmitonNextData = `<html><body>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"recipeData":{"recipe":{
  "title":"Blanquette de veau",
  "preparationTime":20,
  "cookingTime":90,
  "servings":6,
  "ingredientGroups":[{"name":"","items":[
    {"name":"veau","quantity":1,"unit":"kg"},
    {"name":"carottes","quantity":3},
    {"displayText":"2 gousses d'ail"}
  ]}],
  "steps":[{"text":"Couper la viande."},{"text":"Faire cuire 1h30."}]
}}}}}</script>
</body></html>`

func TestSiteRegistryNextData(t *testing.T) {
	logger := zerolog.Nop()
	r := NewSiteRegistry(&logger)

	res := r.Extract(mustPage(t, marmitonNextData, "https://www.marmiton.org/recettes/recette_blanquette.aspx"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "site_specific:marmiton", res.Strategy)
	c := res.Candidate
	assert.Equal(t, "Blanquette de veau", c.Title)
	assert.Equal(t, []recipe.Ingredient{
		{Quantity: "1", Unit: "kg", Name: "veau"},
		{Quantity: "3", Name: "carottes"},
		{Quantity: "2", Unit: "gousse", Name: "ail"},
	}, c.Ingredients)
	assert.Equal(t, []string{"Couper la viande.", "Faire cuire 1h30."}, c.Instructions)
	assert.Equal(t, 20, *c.PrepMinutes)
	assert.Equal(t, 90, *c.CookMinutes)
	assert.Equal(t, 6, *c.Servings)
}

func TestSiteRegistryUnknownDomain(t *testing.T) {
	r := NewSiteRegistry(nil)
	res := r.Extract(mustPage(t, marmitonNextData, "https://example.com/x"))
	assert.Equal(t, NotFound, res.Kind)
	assert.False(t, r.Has("example.com"))
	assert.True(t, r.Has("fr.marmiton.org"))
}

func TestSiteRegistryRecoversPanics(t *testing.T) {
	r := NewSiteRegistry(nil)
	r.Register("example.org", "boom", func(*Page) *recipe.Candidate {
		panic("unexpected layout")
	})

	res := r.Extract(mustPage(t, `<p>x</p>`, "https://example.org/"))
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "site_specific:boom", res.Strategy)
}

func TestSelectorRuleOverridesBuiltin(t *testing.T) {
	html := `<html><body>
<h1 class="t">Tarte au citron</h1>
<div class="ads"><li class="ing">pub</li></div>
<ul><li class="ing">1 pâte sablée</li><li class="ing">3 citrons</li></ul>
<ol><li class="step">Cuire la pâte.</li><li class="step">2. Garnir.</li></ol>
<span class="prep">Préparation : 30 min</span>
<span class="serv">8 parts</span>
</body></html>`

	r := NewSiteRegistry(nil)
	rule := SelectorRule{
		Title:            "h1.t",
		Ingredients:      "li.ing",
		Instructions:     "li.step",
		PrepTime:         ".prep",
		Servings:         ".serv",
		ExcludeSelectors: []string{".ads"},
	}
	r.Register("marmiton.org", "configured", rule.Extract)

	res := r.Extract(mustPage(t, html, "https://www.marmiton.org/recettes/tarte.aspx"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "site_specific:configured", res.Strategy)
	assert.Equal(t, "Tarte au citron", res.Candidate.Title)
	assert.Len(t, res.Candidate.Ingredients, 2)
	assert.Equal(t, []string{"Cuire la pâte.", "Garnir."}, res.Candidate.Instructions)
	assert.Equal(t, 30, *res.Candidate.PrepMinutes)
	assert.Equal(t, 8, *res.Candidate.Servings)
}

func TestHfreshRule(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Poulet crémeux | hfresh"></head><body>
<span>35 min</span>
<div class="flex items-center gap-3"><img alt="Filet de poulet" src="a.png"><div><p>Filet de poulet</p><p>150 g</p></div></div>
<div class="flex items-center gap-3"><img alt="Crème" src="b.png"><div><p>Crème</p><p>10 cl</p></div></div>
<div class="flex gap-4"><div>1</div><div><p>Cuire</p><ul><li>Faire dorer le poulet.</li></ul></div></div>
<div class="flex gap-4"><div>2</div><div><p>Servir</p></div></div>
</body></html>`

	res := NewSiteRegistry(nil).Extract(mustPage(t, html, "https://hfresh.info/fr-FR/recipes/poulet"))

	require.Equal(t, Usable, res.Kind)
	c := res.Candidate
	assert.Equal(t, "Poulet crémeux", c.Title)
	assert.Equal(t, []recipe.Ingredient{
		{Quantity: "150", Unit: "g", Name: "Filet de poulet"},
		{Quantity: "10", Unit: "cl", Name: "Crème"},
	}, c.Ingredients)
	assert.Equal(t, []string{"Faire dorer le poulet.", "Servir"}, c.Instructions)
	assert.Equal(t, 35, *c.PrepMinutes)
	assert.Equal(t, 0, *c.CookMinutes)
}

func TestHfreshRuleLabeledTimes(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Gratin dauphinois | hfresh"></head><body>
<div class="facts">
  <div><p>Temps total</p><span>50 min</span></div>
  <div><p>Temps de cuisson</p><span>35 min</span></div>
</div>
<div class="flex items-center gap-3"><img alt="Pommes de terre" src="a.png"><div><p>Pommes de terre</p><p>600 g</p></div></div>
<div class="flex gap-4"><div>1</div><div><p>Enfourner</p></div></div>
</body></html>`

	res := NewSiteRegistry(nil).Extract(mustPage(t, html, "https://hfresh.info/fr-FR/recipes/gratin"))

	require.Equal(t, Usable, res.Kind)
	c := res.Candidate
	require.NotNil(t, c.PrepMinutes)
	require.NotNil(t, c.CookMinutes)
	assert.Equal(t, 15, *c.PrepMinutes)
	assert.Equal(t, 35, *c.CookMinutes)
}

func TestHfreshRulePrepLabel(t *testing.T) {
	html := `<html><body>
<div><span>Préparation</span><span>20 min</span></div>
</body></html>`

	c := hfreshRule(mustPage(t, html, "https://hfresh.info/fr-FR/recipes/x"))

	require.NotNil(t, c.PrepMinutes)
	assert.Equal(t, 20, *c.PrepMinutes)
	assert.Nil(t, c.CookMinutes)
}
