// Package importer runs the recipe import pipeline: fetch, structured data,
// site rules, heuristics, merge, cleaning and classification.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcosevegrand/recipe-import/internal/classifier"
	"github.com/marcosevegrand/recipe-import/internal/extractor"
	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/sanitize"
	"github.com/marcosevegrand/recipe-import/internal/urlguard"
)

const (
	logKeyURL      = "url"
	logKeyState    = "state"
	logKeyStrategy = "strategy"
	logKeyKind     = "kind"
	logKeyReason   = "reason"
	logKeyDuration = "duration"
	logKeyScore    = "score"
)

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Observer receives pipeline events, typically to feed metrics.
type Observer interface {
	StageResult(stage, kind string)
	ImportFinished(outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) StageResult(string, string)            {}
func (nopObserver) ImportFinished(string, time.Duration) {}

// SiteRule is a selector rule declared in configuration.
type SiteRule struct {
	Domain string
	Name   string
	Rule   extractor.SelectorRule
}

// Options tunes extraction and cleaning.
type Options struct {
	Heuristic        extractor.HeuristicOptions
	MinCategoryScore int
	RemoveFluff      bool
	SiteRules        []SiteRule
}

// Importer turns recipe URLs into cleaned, categorized recipes. It keeps no
// per-import state and may serve concurrent imports.
type Importer struct {
	fetcher    Fetcher
	structured extractor.Strategy
	sites      *extractor.SiteRegistry
	heuristic  extractor.Strategy
	classifier *classifier.Classifier
	sanitizer  *sanitize.Sanitizer
	opts       Options
	logger     *zerolog.Logger
	observer   Observer
}

// New wires an importer. A nil logger disables logging.
func New(fetcher Fetcher, opts Options, logger *zerolog.Logger) *Importer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	sites := extractor.NewSiteRegistry(logger)
	for _, rule := range opts.SiteRules {
		name := rule.Name
		if name == "" {
			name = "config:" + rule.Domain
		}
		sites.Register(rule.Domain, name, rule.Rule.Extract)
	}

	return &Importer{
		fetcher:    fetcher,
		structured: extractor.NewStructuredDataStrategy(),
		sites:      sites,
		heuristic:  extractor.NewHeuristicStrategy(opts.Heuristic),
		classifier: classifier.New(opts.MinCategoryScore),
		sanitizer:  sanitize.New(),
		opts:       opts,
		logger:     logger,
		observer:   nopObserver{},
	}
}

// SetObserver installs an observer for stage and import events.
func (im *Importer) SetObserver(o Observer) {
	if o != nil {
		im.observer = o
	}
}

// Import fetches rawURL and extracts a recipe from it.
func (im *Importer) Import(ctx context.Context, rawURL string) (*recipe.Recipe, error) {
	r, _, err := im.ImportWithTrace(ctx, rawURL)
	return r, err
}

// ImportWithTrace is Import that also reports the states visited.
func (im *Importer) ImportWithTrace(ctx context.Context, rawURL string) (*recipe.Recipe, *Trace, error) {
	start := time.Now()
	trace := &Trace{}

	r, err := im.importURL(ctx, rawURL, trace)
	im.finish(rawURL, trace, err, start)
	return r, trace, err
}

// ExtractHTML runs the pipeline on an already fetched page.
func (im *Importer) ExtractHTML(rawHTML, pageURL string) (*recipe.Recipe, *Trace, error) {
	start := time.Now()
	trace := &Trace{}

	r, err := im.extract(rawHTML, pageURL, trace)
	im.finish(pageURL, trace, err, start)
	return r, trace, err
}

func (im *Importer) importURL(ctx context.Context, rawURL string, trace *Trace) (*recipe.Recipe, error) {
	trace.enter(StateFetching)
	if err := urlguard.Validate(rawURL); err != nil {
		return nil, err
	}

	body, err := im.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return im.extract(body, rawURL, trace)
}

func (im *Importer) extract(rawHTML, pageURL string, trace *Trace) (*recipe.Recipe, error) {
	page, err := extractor.NewPage(rawHTML, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", recipe.ErrExtractionFailed, err)
	}

	trace.enter(StateStructuredData)
	structured := im.run(im.structured, page)

	var c *recipe.Candidate
	switch {
	case structured.Kind == extractor.Usable:
		trace.enter(StateComplete)
		trace.Strategy = structured.Strategy
		c = enrich(structured.Candidate, func() *recipe.Candidate {
			return im.run(im.sites, page).Candidate
		})
	case structured.Found() && strings.TrimSpace(structured.Candidate.Title) != "":
		trace.enter(StatePartialFill)
		c, err = im.partialFill(page, structured.Candidate, trace)
	default:
		trace.enter(StateSiteSpecificPrimary)
		c, err = im.sitePrimary(page, trace)
	}
	if err != nil {
		return nil, err
	}

	trace.enter(StateClean)
	r, err := im.clean(c, pageURL)
	if err != nil {
		return nil, err
	}

	trace.enter(StateCategorize)
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	r.Category = im.classifier.Classify(r.Title, r.Tags, names)

	trace.enter(StateDone)
	return r, nil
}

// partialFill completes a structured candidate that has a title but misses
// ingredients or instructions.
func (im *Importer) partialFill(page *extractor.Page, structured *recipe.Candidate, trace *Trace) (*recipe.Candidate, error) {
	site := im.run(im.sites, page)
	merged := Merge(structured, site.Candidate)

	if !complete(merged) {
		trace.enter(StateHeuristicFallback)
		heuristic := im.run(im.heuristic, page)
		merged = Merge(structured, site.Candidate, heuristic.Candidate)
	}

	if !complete(merged) {
		return nil, fmt.Errorf("%w: %d ingredients, %d instructions",
			recipe.ErrIncompleteExtraction, len(merged.Ingredients), len(merged.Instructions))
	}
	trace.Strategy = "merged"
	return merged, nil
}

// sitePrimary runs when structured data gave nothing usable.
func (im *Importer) sitePrimary(page *extractor.Page, trace *Trace) (*recipe.Candidate, error) {
	if site := im.run(im.sites, page); site.Kind == extractor.Usable {
		trace.Strategy = site.Strategy
		return site.Candidate, nil
	}

	trace.enter(StateHeuristicFallback)
	if heuristic := im.run(im.heuristic, page); heuristic.Kind == extractor.Usable {
		trace.Strategy = heuristic.Strategy
		return heuristic.Candidate, nil
	}

	return nil, fmt.Errorf("%w: no strategy produced a usable recipe for %s", recipe.ErrExtractionFailed, page.Domain)
}

func (im *Importer) run(s extractor.Strategy, page *extractor.Page) extractor.Result {
	res := s.Extract(page)

	strategy := res.Strategy
	if strategy == "" {
		strategy = s.Name()
	}
	im.logger.Debug().
		Str(logKeyURL, page.URL).
		Str(logKeyStrategy, strategy).
		Str(logKeyKind, res.Kind.String()).
		Int(logKeyScore, res.Score).
		Msg("strategy finished")
	im.observer.StageResult(s.Name(), res.Kind.String())
	return res
}

func (im *Importer) finish(rawURL string, trace *Trace, err error, start time.Time) {
	elapsed := time.Since(start)

	if err != nil {
		trace.enter(StateFailed)
		im.logger.Warn().
			Err(err).
			Str(logKeyURL, rawURL).
			Str(logKeyReason, recipe.Reason(err)).
			Dur(logKeyDuration, elapsed).
			Msg("import failed")
		im.observer.ImportFinished(Outcome(err), elapsed)
		return
	}

	im.logger.Info().
		Str(logKeyURL, rawURL).
		Str(logKeyStrategy, trace.Strategy).
		Str(logKeyState, string(trace.Last())).
		Dur(logKeyDuration, elapsed).
		Msg("recipe imported")
	im.observer.ImportFinished(Outcome(nil), elapsed)
}

// Outcome labels an import result for metrics.
func Outcome(err error) string {
	var tooLarge *recipe.TooLargeError

	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, recipe.ErrInvalidURL), errors.Is(err, recipe.ErrDisallowedProtocol), errors.Is(err, recipe.ErrDisallowedHost):
		return "url_not_allowed"
	case errors.As(err, &tooLarge), errors.Is(err, recipe.ErrTooLarge):
		return "too_large"
	case errors.Is(err, recipe.ErrBotChallenge):
		return "bot_challenge"
	case errors.Is(err, recipe.ErrRobotsDisallowed):
		return "robots_disallowed"
	case errors.Is(err, recipe.ErrNetwork):
		return "network"
	case errors.Is(err, recipe.ErrIncompleteExtraction):
		return "incomplete"
	case errors.Is(err, recipe.ErrExtractionFailed):
		return "extraction_failed"
	default:
		return "error"
	}
}
