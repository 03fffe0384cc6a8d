package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/marcosevegrand/recipe-import/internal/batch"
	"github.com/marcosevegrand/recipe-import/internal/config"
	"github.com/marcosevegrand/recipe-import/internal/recipe"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlags(cfg, flags{library: "/tmp/lib.json", epubDir: "/tmp/books", metricsAddr: ":9100", verbose: true})

	assert.Equal(t, "/tmp/lib.json", cfg.Library.Path)
	assert.Equal(t, "/tmp/books", cfg.Output.OutputPath)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setLogLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	setLogLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestPrintRecipe(t *testing.T) {
	var buf bytes.Buffer
	printRecipe(&buf, &recipe.Recipe{
		Title:        "Crêpes",
		Category:     recipe.CategoryDessert,
		Ingredients:  []recipe.Ingredient{{Quantity: "250", Unit: "g", Name: "farine"}, {Quantity: "4", Name: "œufs"}},
		Instructions: []string{"Mélanger.", "Cuire."},
		PrepMinutes:  recipe.IntPtr(10),
		Servings:     recipe.IntPtr(4),
	})

	out := buf.String()
	assert.Contains(t, out, "Crêpes  [dessert]")
	assert.Contains(t, out, "préparation 10 min, 4 personnes")
	assert.Contains(t, out, "• 250 g farine")
	assert.Contains(t, out, "• 4 œufs")
	assert.Contains(t, out, "2. Cuire.")
}

func TestPrintItem(t *testing.T) {
	var buf bytes.Buffer
	printItem(&buf, batch.Item{URL: "https://a.example/x", Status: batch.StatusFailed, Reason: "page too large"},
		batch.Progress{Total: 3, Failed: 1})
	assert.Equal(t, "  ✗ [1/3] https://a.example/x: page too large\n", buf.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", shortID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "abc", shortID("abc"))
}
