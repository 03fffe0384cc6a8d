package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

func mustPage(t *testing.T, html, pageURL string) *Page {
	t.Helper()
	page, err := NewPage(html, pageURL)
	require.NoError(t, err)
	return page
}

const gateauJSONLD = `<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Gâteau",
  "recipeIngredient": ["200 g de farine", "3 œufs"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Mélanger"},
    {"@type": "HowToStep", "text": "Cuire"}
  ],
  "prepTime": "PT15M",
  "totalTime": "PT45M",
  "recipeYield": "6 parts",
  "recipeCategory": "Dessert",
  "recipeCuisine": "Française"
}
</script></head><body><h1>Gâteau</h1></body></html>`

func TestJSONLDStrategyRecipe(t *testing.T) {
	res := (&JSONLDStrategy{}).Extract(mustPage(t, gateauJSONLD, "https://example.com/gateau"))

	require.Equal(t, Usable, res.Kind)
	c := res.Candidate
	assert.Equal(t, "Gâteau", c.Title)
	assert.Equal(t, []recipe.Ingredient{
		{Quantity: "200", Unit: "g", Name: "farine"},
		{Quantity: "3", Name: "œufs"},
	}, c.Ingredients)
	assert.Equal(t, []string{"Mélanger", "Cuire"}, c.Instructions)
	require.NotNil(t, c.PrepMinutes)
	require.NotNil(t, c.CookMinutes)
	assert.Equal(t, 15, *c.PrepMinutes)
	assert.Equal(t, 30, *c.CookMinutes)
	require.NotNil(t, c.Servings)
	assert.Equal(t, 6, *c.Servings)
	assert.Equal(t, []string{"Dessert", "Française"}, c.Tags)
}

func TestJSONLDStrategyGraphAndSections(t *testing.T) {
	html := `<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebSite","name":"Le blog"},
  {"@type":"WebPage","mainEntity":{"@type":["Recipe","NewsArticle"],
    "name":"Tarte fine",
    "recipeIngredient":"1 pâte feuilletée\n4 pommes",
    "recipeInstructions":[
      {"@type":"HowToSection","name":"Pâte","itemListElement":[{"@type":"HowToStep","text":"Étaler la pâte."}]},
      {"@type":"HowToSection","name":"Garniture","itemListElement":[{"@type":"HowToStep","text":"Couper les pommes."},{"@type":"HowToStep","name":"Enfourner."}]}
    ],
    "cookTime":"PT25M"}}
]}
</script>`

	res := (&JSONLDStrategy{}).Extract(mustPage(t, html, "https://example.com/tarte"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "Tarte fine", res.Candidate.Title)
	assert.Len(t, res.Candidate.Ingredients, 2)
	assert.Equal(t, []string{"Étaler la pâte.", "Couper les pommes.", "Enfourner."}, res.Candidate.Instructions)
	assert.Nil(t, res.Candidate.PrepMinutes)
	require.NotNil(t, res.Candidate.CookMinutes)
	assert.Equal(t, 25, *res.Candidate.CookMinutes)
}

func TestJSONLDStrategyLenientAndInvalid(t *testing.T) {
	html := `<script type="application/ld+json">{not json}</script>
<script type="application/ld+json">{"@type":"Recipe","name":"Soupe
froide","recipeIngredient":["1 concombre"],"recipeInstructions":"1. Mixer. 2. Servir frais."}</script>`

	res := (&JSONLDStrategy{}).Extract(mustPage(t, html, "https://example.com/soupe"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "Soupe froide", res.Candidate.Title)
	assert.Equal(t, []string{"Mixer.", "Servir frais."}, res.Candidate.Instructions)
}

func TestJSONLDStrategyPartialAndMissing(t *testing.T) {
	partial := `<script type="application/ld+json">{"@type":"http://schema.org/Recipe","name":"Crêpes","recipeIngredient":["250 g de farine"]}</script>`
	res := (&JSONLDStrategy{}).Extract(mustPage(t, partial, "https://example.com/crepes"))
	assert.Equal(t, Partial, res.Kind)
	assert.Empty(t, res.Candidate.Instructions)

	none := `<script type="application/ld+json">{"@type":"Article","name":"Actualité"}</script>`
	res = (&JSONLDStrategy{}).Extract(mustPage(t, none, "https://example.com/news"))
	assert.Equal(t, NotFound, res.Kind)
	assert.Nil(t, res.Candidate)
}

const ratatouilleMicrodata = `<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Ratatouille</h1>
  <meta itemprop="prepTime" content="PT20M">
  <meta itemprop="cookTime" content="PT1H">
  <span itemprop="recipeYield">4 personnes</span>
  <span itemprop="recipeCategory">Plat principal</span>
  <ul>
    <li itemprop="recipeIngredient">2 courgettes</li>
    <li itemprop="recipeIngredient">1 aubergine</li>
    <li itemprop="recipeIngredient">3 tomates</li>
  </ul>
  <div itemprop="recipeInstructions">
    <ol><li>Couper les légumes.</li><li>Faire revenir.</li><li>Laisser mijoter.</li></ol>
  </div>
</div>
</body></html>`

func TestMicrodataStrategy(t *testing.T) {
	res := (&MicrodataStrategy{}).Extract(mustPage(t, ratatouilleMicrodata, "https://example.com/ratatouille"))

	require.Equal(t, Usable, res.Kind)
	c := res.Candidate
	assert.Equal(t, "Ratatouille", c.Title)
	assert.Len(t, c.Ingredients, 3)
	assert.Equal(t, recipe.Ingredient{Quantity: "2", Name: "courgettes"}, c.Ingredients[0])
	assert.Equal(t, []string{"Couper les légumes.", "Faire revenir.", "Laisser mijoter."}, c.Instructions)
	assert.Equal(t, 20, *c.PrepMinutes)
	assert.Equal(t, 60, *c.CookMinutes)
	assert.Equal(t, 4, *c.Servings)
	assert.Equal(t, []string{"Plat principal"}, c.Tags)
}

func TestMicrodataStrategyIgnoresNestedItemProps(t *testing.T) {
	html := `<html><body>
<div itemscope itemtype="https://schema.org/Recipe">
  <div itemprop="author" itemscope itemtype="https://schema.org/Person">
    <span itemprop="name">Marie Dupont</span>
  </div>
  <h1 itemprop="name">Tarte aux pommes</h1>
  <div itemprop="aggregateRating" itemscope itemtype="https://schema.org/AggregateRating">
    <meta itemprop="recipeYield" content="12">
  </div>
  <span itemprop="recipeYield">6 personnes</span>
  <ul>
    <li itemprop="recipeIngredient">4 pommes</li>
    <li itemprop="recipeIngredient">1 pâte brisée</li>
  </ul>
  <div itemprop="recipeInstructions">
    <ol><li>Étaler la pâte.</li><li>Disposer les pommes.</li><li>Cuire 30 minutes.</li></ol>
  </div>
</div>
</body></html>`
	res := (&MicrodataStrategy{}).Extract(mustPage(t, html, "https://example.com/tarte"))

	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "Tarte aux pommes", res.Candidate.Title)
	require.NotNil(t, res.Candidate.Servings)
	assert.Equal(t, 6, *res.Candidate.Servings)
	assert.Len(t, res.Candidate.Ingredients, 2)
}

func TestStructuredDataChainPrefersUsable(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Recipe","name":"Ratatouille"}</script>` + ratatouilleMicrodata

	res := NewStructuredDataStrategy().Extract(mustPage(t, html, "https://example.com/ratatouille"))
	require.Equal(t, Usable, res.Kind)
	assert.Equal(t, "microdata", res.Strategy)

	res = NewStructuredDataStrategy().Extract(mustPage(t, `<p>rien</p>`, "https://example.com/"))
	assert.Equal(t, NotFound, res.Kind)
}

func TestSplitInstructionText(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"1. Mélanger. 2. Cuire 1.5 heure. 3) Servir.", []string{"Mélanger.", "Cuire 1.5 heure.", "Servir."}},
		{"Mélanger.\nCuire.", []string{"Mélanger.", "Cuire."}},
		{"Mélanger<br/>Cuire", []string{"Mélanger", "Cuire"}},
		{"Cuire 2 minutes.", []string{"Cuire 2 minutes."}},
		{"   ", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitInstructionText(tt.in), tt.in)
	}
}
