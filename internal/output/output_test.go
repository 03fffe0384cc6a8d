package output

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

func gateau() recipe.Recipe {
	return recipe.Recipe{
		Title: "Gâteau <au> chocolat",
		Ingredients: []recipe.Ingredient{
			{Quantity: "200", Unit: "g", Name: "chocolat noir"},
			{Quantity: "3", Name: "œufs"},
		},
		Instructions: []string{"Faire fondre le chocolat.", "Enfourner 30 min à 180 °C."},
		PrepMinutes:  recipe.IntPtr(15),
		CookMinutes:  recipe.IntPtr(90),
		Servings:     recipe.IntPtr(6),
		Tags:         []string{"Dessert"},
		Category:     recipe.CategoryDessert,
		SourceURL:    "https://example.com/gateau?a=1&b=2",
	}
}

func TestFormatRecipeHTML(t *testing.T) {
	out := formatRecipeHTML(gateau())

	assert.Contains(t, out, `<h1 class="recipe-title">Gâteau &lt;au&gt; chocolat</h1>`)
	assert.Contains(t, out, "Préparation : 15 min · Cuisson : 1 h 30 · 6 personnes")
	assert.Contains(t, out, "<li>200 g chocolat noir</li>")
	assert.Contains(t, out, "<li>3 œufs</li>")
	assert.Contains(t, out, "<ol>\n  <li>Faire fondre le chocolat.</li>")
	assert.Contains(t, out, `href="https://example.com/gateau?a=1&amp;b=2"`)
}

func TestFormatRecipeHTMLWithoutMeta(t *testing.T) {
	r := gateau()
	r.PrepMinutes, r.CookMinutes, r.Servings = nil, nil, nil
	r.Tags = nil

	out := formatRecipeHTML(r)
	assert.NotContains(t, out, "recipe-meta")
	assert.NotContains(t, out, "recipe-tags")
}

func TestChaptersGroupByCategory(t *testing.T) {
	b := NewBook("Mes recettes", "Moi")
	for _, r := range []recipe.Recipe{
		{Title: "Mousse", Category: recipe.CategoryDessert},
		{Title: "Velouté", Category: recipe.CategoryStarter},
		{Title: "Tarte", Category: recipe.CategoryDessert},
		{Title: "Inconnu", Category: "mystère"},
	} {
		b.AddRecipe(r)
	}

	chapters := b.Chapters()
	require.Len(t, chapters, 3)
	assert.Equal(t, "Entrées", chapters[0].Title)
	assert.Equal(t, "Desserts", chapters[1].Title)
	assert.Equal(t, "Mousse", chapters[1].Recipes[0].Title)
	assert.Equal(t, "Tarte", chapters[1].Recipes[1].Title)
	assert.Equal(t, recipe.CategoryOther, chapters[2].Category)
}

func TestGenerateEPUB(t *testing.T) {
	dir := t.TempDir()
	b := NewBook("Mes recettes: hiver", "Moi")
	b.AddRecipe(gateau())

	path, err := GenerateEPUB(b, dir, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "Mes_recettes_hiver.epub"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PK"), "epub is a zip archive")
}

func TestGenerateEPUBEmpty(t *testing.T) {
	_, err := GenerateEPUB(NewBook("Vide", ""), t.TempDir(), nil)
	require.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{0: "0 min", 45: "45 min", 60: "1 h", 95: "1 h 35", 125: "2 h 05"}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in))
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Crêpes_de_Mamie", SanitizeFilename(" Crêpes de Mamie? "))
	assert.Equal(t, "livre_de_recettes", SanitizeFilename("///"))
	assert.Len(t, []rune(SanitizeFilename(strings.Repeat("é", 150))), 100)
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 bytes", FormatFileSize(512))
	assert.Equal(t, "1.50 KB", FormatFileSize(1536))
	assert.Equal(t, "2.00 MB", FormatFileSize(2<<20))
}

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	assert.True(t, strings.HasPrefix(id, "urn:uuid:"))
	assert.NotEqual(t, id, GenerateUUID())
}
