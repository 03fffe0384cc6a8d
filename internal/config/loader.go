package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/marcosevegrand/recipe-import/internal/extractor"
	"github.com/marcosevegrand/recipe-import/internal/fetcher"
	"github.com/marcosevegrand/recipe-import/internal/importer"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RECIPES_"

// Load builds the effective configuration: defaults, then the optional file
// at path, then a .env file if present, then RECIPES_* variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadConfig loads configuration from a YAML or JSON file
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("failed to parse config (tried YAML and JSON): %w", err)
			}
		}
	}
	return nil
}

// ApplyEnv overrides cfg with RECIPES_* environment variables. Unset
// variables leave the current values in place.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ValidateConfig validates the configuration for required fields and consistency
func ValidateConfig(cfg *Config) error {
	if cfg.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0")
	}
	if cfg.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be >= 1")
	}
	if cfg.Fetch.MaxBodyMB < 1 {
		return fmt.Errorf("fetch.maxBodyMb must be >= 1")
	}
	if cfg.Fetch.MinDelayMS < 0 || cfg.Fetch.BaseDelayMS < 0 || cfg.Fetch.BlockedDelayMS < 0 || cfg.Fetch.MaxJitterMS < 0 {
		return fmt.Errorf("fetch delays must be >= 0")
	}
	if cfg.Fetch.RequestsPerSec < 0 {
		return fmt.Errorf("fetch.requestsPerSecond must be >= 0")
	}
	if cfg.Fetch.MaxConcurrent < 1 {
		cfg.Fetch.MaxConcurrent = 1
	}

	if cfg.Extraction.MinConfidence < 0 || cfg.Extraction.MinConfidence > 100 {
		return fmt.Errorf("extraction.minConfidence must be between 0 and 100")
	}
	if cfg.Extraction.MaxIngredients < 1 || cfg.Extraction.MaxInstructions < 1 {
		return fmt.Errorf("extraction caps must be >= 1")
	}

	if cfg.Classifier.MinScore < 0 {
		return fmt.Errorf("classifier.minScore must be >= 0")
	}

	for i, site := range cfg.Sites {
		if strings.TrimSpace(site.Domain) == "" {
			return fmt.Errorf("sites[%d].domain is required", i)
		}
		if site.Ingredients == "" && site.Instructions == "" {
			return fmt.Errorf("sites[%d] (%s) needs an ingredients or instructions selector", i, site.Domain)
		}
	}

	if cfg.Library.Path == "" {
		return fmt.Errorf("library.path is required")
	}
	if cfg.Library.FreeLimit < 0 {
		return fmt.Errorf("library.freeLimit must be >= 0")
	}

	if cfg.Output.Title == "" {
		return fmt.Errorf("output.title is required")
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logging.level: %s (valid: debug, info, warn, error)", cfg.Logging.Level)
	}

	return nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(cfg *Config, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		data, err = yaml.Marshal(cfg)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FetcherOptions maps the fetch section onto fetcher options.
func (c *Config) FetcherOptions() fetcher.Options {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return fetcher.Options{
		Attempts:         c.Fetch.Attempts,
		Timeout:          time.Duration(c.Fetch.Timeout) * time.Second,
		MaxBodyBytes:     int64(c.Fetch.MaxBodyMB) * 1024 * 1024,
		MinDelay:         ms(c.Fetch.MinDelayMS),
		BaseDelay:        ms(c.Fetch.BaseDelayMS),
		BlockedDelay:     ms(c.Fetch.BlockedDelayMS),
		MaxJitter:        ms(c.Fetch.MaxJitterMS),
		UserAgent:        c.Fetch.UserAgent,
		AcceptLanguage:   c.Fetch.AcceptLanguage,
		Referer:          c.Fetch.Referer,
		DomainRate:       c.Fetch.RequestsPerSec,
		RespectRobotsTxt: c.Fetch.RespectRobotsTxt,
	}
}

// ImporterOptions maps the extraction, classifier and sites sections onto importer options.
func (c *Config) ImporterOptions() importer.Options {
	rules := make([]importer.SiteRule, 0, len(c.Sites))
	for _, s := range c.Sites {
		rules = append(rules, importer.SiteRule{
			Domain: strings.TrimSpace(s.Domain),
			Name:   s.Name,
			Rule: extractor.SelectorRule{
				Title:            s.Title,
				Ingredients:      s.Ingredients,
				Instructions:     s.Instructions,
				PrepTime:         s.PrepTime,
				CookTime:         s.CookTime,
				Servings:         s.Servings,
				ExcludeSelectors: s.ExcludeSelectors,
			},
		})
	}

	return importer.Options{
		Heuristic: extractor.HeuristicOptions{
			MinConfidence:   c.Extraction.MinConfidence,
			MaxIngredients:  c.Extraction.MaxIngredients,
			MaxInstructions: c.Extraction.MaxInstructions,
		},
		MinCategoryScore: c.Classifier.MinScore,
		RemoveFluff:      c.Extraction.RemoveFluff,
		SiteRules:        rules,
	}
}
