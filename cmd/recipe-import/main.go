// Recipe Import
// Imports French recipe pages into a local library and exports it as an EPUB cookbook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcosevegrand/recipe-import/internal/config"
	"github.com/marcosevegrand/recipe-import/internal/entitlement"
	"github.com/marcosevegrand/recipe-import/internal/fetcher"
	"github.com/marcosevegrand/recipe-import/internal/importer"
	"github.com/marcosevegrand/recipe-import/internal/observability"
	"github.com/marcosevegrand/recipe-import/internal/storage"
)

const (
	AppName    = "recipe-import"
	AppVersion = "1.0.0"
)

type flags struct {
	configFile  string
	url         string
	batchFile   string
	library     string
	epubDir     string
	list        bool
	jsonOut     bool
	dryRun      bool
	verbose     bool
	metricsAddr string
}

func main() {
	var (
		f       flags
		version = flag.Bool("version", false, "Show version information")
		help    = flag.Bool("help", false, "Show help message")
	)
	flag.StringVar(&f.configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.StringVar(&f.url, "url", "", "Import a single recipe URL")
	flag.StringVar(&f.batchFile, "batch", "", "Import every URL listed in a file (one per line, # for comments)")
	flag.StringVar(&f.library, "library", "", "Library file (overrides config)")
	flag.StringVar(&f.epubDir, "epub", "", "Export the library as an EPUB cookbook into this directory")
	flag.BoolVar(&f.list, "list", false, "List the recipes in the library")
	flag.BoolVar(&f.jsonOut, "json", false, "Print imported recipes as JSON")
	flag.BoolVar(&f.dryRun, "dry-run", false, "Extract without saving to the library")
	flag.BoolVar(&f.verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `%s v%s - Recipe Importer

Imports French recipe pages into a local library and exports it as an EPUB cookbook.

Usage:
  %s [options]

Options:
`, AppName, AppVersion, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Import one recipe
  %s --url "https://www.marmiton.org/recettes/recette_gateau-au-chocolat_12345.aspx"

  # Check what would be extracted without saving it
  %s --url "https://www.750g.com/tarte-tatin-r1234.htm" --dry-run --json

  # Import a list of URLs and build a cookbook
  %s --batch urls.txt --epub ./books

  # Show the library
  %s --list

Configuration:
  Supported formats: YAML (.yaml, .yml) and JSON (.json).
  Every setting can be overridden with RECIPES_* environment variables or a .env file.

`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		os.Exit(0)
	}

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	if f.url == "" && f.batchFile == "" && f.epubDir == "" && !f.list {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(f.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, f)

	logger := newLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, f, &logger))
}

func applyFlags(cfg *config.Config, f flags) {
	if f.library != "" {
		cfg.Library.Path = f.library
	}
	if f.epubDir != "" {
		cfg.Output.OutputPath = f.epubDir
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	setLogLevel(strings.ToLower(cfg.Level))

	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// setLogLevel sets the global log level based on the configuration.
func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

type app struct {
	cfg      *config.Config
	importer *importer.Importer
	store    storage.Store
	gate     entitlement.Gate
	metrics  observability.Recorder
	logger   *zerolog.Logger
}

func newApp(cfg *config.Config, logger *zerolog.Logger) (*app, error) {
	var metrics observability.Recorder

	fetch := fetcher.New(cfg.FetcherOptions(), logger)
	fetch.OnAttempt(metrics.FetchAttempt)

	im := importer.New(fetch, cfg.ImporterOptions(), logger)
	im.SetObserver(metrics)

	store, err := storage.OpenFileStore(cfg.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	return &app{
		cfg:      cfg,
		importer: im,
		store:    store,
		gate:     entitlement.NewQuotaGate(cfg.Library.FreeLimit, cfg.Library.Premium),
		metrics:  metrics,
		logger:   logger,
	}, nil
}

func run(ctx context.Context, cfg *config.Config, f flags, logger *zerolog.Logger) int {
	a, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	if cfg.Metrics.Addr != "" {
		srv := observability.NewServer(cfg.Metrics.Addr, logger)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	printHeader(os.Stdout, cfg, f)

	code := 0
	switch {
	case f.url != "":
		code = a.importOne(ctx, os.Stdout, f.url, f.dryRun, f.jsonOut)
	case f.batchFile != "":
		code = a.importBatch(ctx, os.Stdout, f.batchFile, f.dryRun)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Println("\n⏹  Interrupted")
		return 1
	}

	if f.list {
		if err := a.listLibrary(ctx, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return 1
		}
	}

	if f.epubDir != "" {
		if err := a.exportEPUB(ctx, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "❌ EPUB generation failed: %v\n", err)
			return 1
		}
	}

	return code
}
