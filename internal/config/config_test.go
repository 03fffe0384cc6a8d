package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "recipes.yaml", `
fetch:
  timeout: 10
  attempts: 2
  requestsPerSecond: 0.5
extraction:
  minConfidence: 70
  removeFluff: true
sites:
  - domain: cuisine.example.net
    title: h1.titre
    ingredients: ul.ingredients li
    instructions: ol.etapes li
    excludeSelectors: [".pub"]
library:
  path: /tmp/lib.json
  freeLimit: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.Attempts)
	assert.Equal(t, 3000, cfg.Fetch.BlockedDelayMS, "unset fields keep defaults")
	assert.Equal(t, 70, cfg.Extraction.MinConfidence)
	assert.True(t, cfg.Extraction.RemoveFluff)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, []string{".pub"}, cfg.Sites[0].ExcludeSelectors)
	assert.Equal(t, 5, cfg.Library.FreeLimit)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "recipes.json", `{"classifier":{"minScore":4},"output":{"title":"Hiver","lang":"fr"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Classifier.MinScore)
	assert.Equal(t, "Hiver", cfg.Output.Title)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeFile(t, "bad.yaml", "fetch: [")
	_, err = LoadConfig(path)
	require.Error(t, err)

	path = writeFile(t, "invalid.yaml", "fetch:\n  attempts: 0\n")
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "fetch.attempts")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }, "fetch.timeout"},
		{"negative delay", func(c *Config) { c.Fetch.BaseDelayMS = -1 }, "fetch delays"},
		{"confidence range", func(c *Config) { c.Extraction.MinConfidence = 101 }, "minConfidence"},
		{"site without domain", func(c *Config) { c.Sites = []SiteConfig{{Ingredients: "li"}} }, "sites[0].domain"},
		{"site without selectors", func(c *Config) { c.Sites = []SiteConfig{{Domain: "a.example"}} }, "needs an ingredients"},
		{"library path", func(c *Config) { c.Library.Path = "" }, "library.path"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidateConfigClampsConcurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fetch.MaxConcurrent = 0
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, 1, cfg.Fetch.MaxConcurrent)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeFile(t, "recipes.yaml", "fetch:\n  attempts: 2\nlogging:\n  level: warn\n")
	t.Setenv("RECIPES_FETCH_ATTEMPTS", "5")
	t.Setenv("RECIPES_LIBRARY_PREMIUM", "true")
	t.Setenv("RECIPES_METRICS_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetch.Attempts)
	assert.True(t, cfg.Library.Premium)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level, "file value survives when no variable is set")
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Fetch, cfg.Fetch)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Sites = []SiteConfig{{Domain: "a.example", Ingredients: "li"}}
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, SaveConfig(cfg, path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestFetcherOptions(t *testing.T) {
	opts := DefaultConfig().FetcherOptions()

	assert.Equal(t, 3, opts.Attempts)
	assert.Equal(t, 20*time.Second, opts.Timeout)
	assert.Equal(t, int64(5*1024*1024), opts.MaxBodyBytes)
	assert.Equal(t, 500*time.Millisecond, opts.MinDelay)
	assert.Equal(t, 3*time.Second, opts.BlockedDelay)
	assert.Equal(t, 1.0, opts.DomainRate)
	assert.Equal(t, "https://www.google.com/", opts.Referer)
}

func TestImporterOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extraction.RemoveFluff = true
	cfg.Sites = []SiteConfig{{
		Domain:       " cuisine.example.net ",
		Ingredients:  "ul.ingredients li",
		Instructions: "ol li",
		Servings:     ".portions",
	}}

	opts := cfg.ImporterOptions()
	assert.Equal(t, 60, opts.Heuristic.MinConfidence)
	assert.Equal(t, 30, opts.Heuristic.MaxInstructions)
	assert.Equal(t, 2, opts.MinCategoryScore)
	assert.True(t, opts.RemoveFluff)
	require.Len(t, opts.SiteRules, 1)
	assert.Equal(t, "cuisine.example.net", opts.SiteRules[0].Domain)
	assert.Equal(t, ".portions", opts.SiteRules[0].Rule.Servings)
}
