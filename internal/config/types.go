// Package config provides configuration types and loading functionality
// for the recipe importer.
package config

// Config is the root configuration structure
type Config struct {
	Fetch      FetchConfig      `yaml:"fetch" json:"fetch" envPrefix:"FETCH_"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" envPrefix:"EXTRACTION_"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier" envPrefix:"CLASSIFIER_"`
	Sites      []SiteConfig     `yaml:"sites,omitempty" json:"sites,omitempty"`
	Library    LibraryConfig    `yaml:"library" json:"library" envPrefix:"LIBRARY_"`
	Output     OutputConfig     `yaml:"output" json:"output" envPrefix:"OUTPUT_"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging" envPrefix:"LOG_"`
	Metrics    MetricsConfig    `yaml:"metrics" json:"metrics" envPrefix:"METRICS_"`
}

// FetchConfig controls page downloads
type FetchConfig struct {
	UserAgent        string  `yaml:"userAgent,omitempty" json:"userAgent,omitempty" env:"USER_AGENT"`
	AcceptLanguage   string  `yaml:"acceptLanguage,omitempty" json:"acceptLanguage,omitempty" env:"ACCEPT_LANGUAGE"`
	Referer          string  `yaml:"referer,omitempty" json:"referer,omitempty" env:"REFERER"`
	Timeout          int     `yaml:"timeout" json:"timeout" env:"TIMEOUT"`
	Attempts         int     `yaml:"attempts" json:"attempts" env:"ATTEMPTS"`
	MaxBodyMB        int     `yaml:"maxBodyMb" json:"maxBodyMb" env:"MAX_BODY_MB"`
	MinDelayMS       int     `yaml:"minDelayMs" json:"minDelayMs" env:"MIN_DELAY_MS"`
	BaseDelayMS      int     `yaml:"baseDelayMs" json:"baseDelayMs" env:"BASE_DELAY_MS"`
	BlockedDelayMS   int     `yaml:"blockedDelayMs" json:"blockedDelayMs" env:"BLOCKED_DELAY_MS"`
	MaxJitterMS      int     `yaml:"maxJitterMs" json:"maxJitterMs" env:"MAX_JITTER_MS"`
	RequestsPerSec   float64 `yaml:"requestsPerSecond" json:"requestsPerSecond" env:"REQUESTS_PER_SECOND"`
	MaxConcurrent    int     `yaml:"maxConcurrent" json:"maxConcurrent" env:"MAX_CONCURRENT"`
	RespectRobotsTxt bool    `yaml:"respectRobotsTxt" json:"respectRobotsTxt" env:"RESPECT_ROBOTS_TXT"`
}

// ExtractionConfig controls the heuristic stage and cleaning
type ExtractionConfig struct {
	MinConfidence   int  `yaml:"minConfidence" json:"minConfidence" env:"MIN_CONFIDENCE"`
	MaxIngredients  int  `yaml:"maxIngredients" json:"maxIngredients" env:"MAX_INGREDIENTS"`
	MaxInstructions int  `yaml:"maxInstructions" json:"maxInstructions" env:"MAX_INSTRUCTIONS"`
	RemoveFluff     bool `yaml:"removeFluff" json:"removeFluff" env:"REMOVE_FLUFF"`
}

// ClassifierConfig controls category assignment
type ClassifierConfig struct {
	MinScore int `yaml:"minScore" json:"minScore" env:"MIN_SCORE"`
}

// SiteConfig declares CSS selectors for one domain
type SiteConfig struct {
	Domain           string   `yaml:"domain" json:"domain"`
	Name             string   `yaml:"name,omitempty" json:"name,omitempty"`
	Title            string   `yaml:"title,omitempty" json:"title,omitempty"`
	Ingredients      string   `yaml:"ingredients" json:"ingredients"`
	Instructions     string   `yaml:"instructions" json:"instructions"`
	PrepTime         string   `yaml:"prepTime,omitempty" json:"prepTime,omitempty"`
	CookTime         string   `yaml:"cookTime,omitempty" json:"cookTime,omitempty"`
	Servings         string   `yaml:"servings,omitempty" json:"servings,omitempty"`
	ExcludeSelectors []string `yaml:"excludeSelectors,omitempty" json:"excludeSelectors,omitempty"`
}

// LibraryConfig controls where recipes are kept and the free quota
type LibraryConfig struct {
	Path      string `yaml:"path" json:"path" env:"PATH"`
	FreeLimit int    `yaml:"freeLimit" json:"freeLimit" env:"FREE_LIMIT"`
	Premium   bool   `yaml:"premium" json:"premium" env:"PREMIUM"`
}

// OutputConfig controls cookbook generation
type OutputConfig struct {
	OutputPath  string `yaml:"outputPath" json:"outputPath" env:"PATH"`
	Title       string `yaml:"title" json:"title" env:"TITLE"`
	Author      string `yaml:"author" json:"author" env:"AUTHOR"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" env:"DESCRIPTION"`
	Lang        string `yaml:"lang" json:"lang" env:"LANG"`
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" json:"pretty" env:"PRETTY"`
}

// MetricsConfig controls the metrics endpoint
type MetricsConfig struct {
	// Addr is the listen address; empty disables the endpoint.
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty" env:"ADDR"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			AcceptLanguage: "fr-FR,fr;q=0.9,en-US;q=0.6,en;q=0.4",
			Referer:        "https://www.google.com/",
			Timeout:        20,
			Attempts:       3,
			MaxBodyMB:      5,
			MinDelayMS:     500,
			BaseDelayMS:    1000,
			BlockedDelayMS: 3000,
			MaxJitterMS:    1000,
			RequestsPerSec: 1,
			MaxConcurrent:  4,
		},
		Extraction: ExtractionConfig{
			MinConfidence:   60,
			MaxIngredients:  50,
			MaxInstructions: 30,
		},
		Classifier: ClassifierConfig{
			MinScore: 2,
		},
		Library: LibraryConfig{
			Path:      "./recettes.json",
			FreeLimit: 20,
		},
		Output: OutputConfig{
			OutputPath: "./books",
			Title:      "Mes recettes",
			Author:     "Recipe Import",
			Lang:       "fr",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
