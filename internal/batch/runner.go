package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/marcosevegrand/recipe-import/internal/entitlement"
	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/storage"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Importer turns one URL into a recipe.
type Importer interface {
	Import(ctx context.Context, rawURL string) (*recipe.Recipe, error)
}

// Options configures a Runner.
type Options struct {
	Concurrency int
	// DryRun imports without touching the store.
	DryRun bool
	// OnItem is called after each item settles, never concurrently.
	OnItem func(Item, Progress)
}

// Runner imports a list of URLs as independent pipelines.
type Runner struct {
	importer Importer
	store    storage.Store
	gate     entitlement.Gate
	opts     Options
	logger   *zerolog.Logger

	// admit serializes the quota check with the store write.
	admit  sync.Mutex
	report sync.Mutex
}

// NewRunner creates a batch runner. A nil gate admits everything.
func NewRunner(im Importer, store storage.Store, gate entitlement.Gate, opts Options, logger *zerolog.Logger) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if gate == nil {
		gate = entitlement.Unlimited{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		importer: im,
		store:    store,
		gate:     gate,
		opts:     opts,
		logger:   logger,
	}
}

// Run imports every URL and returns the tracker with the per-item outcome.
// Item failures are recorded on the tracker; only cancellation or a store
// failure is returned as an error.
func (r *Runner) Run(ctx context.Context, urls []string) (*Tracker, error) {
	tracker := NewTracker(urls)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for _, it := range tracker.Items() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return r.runItem(gctx, tracker, it)
		})
	}

	if err := g.Wait(); err != nil {
		return tracker, err
	}
	return tracker, ctx.Err()
}

func (r *Runner) runItem(ctx context.Context, tracker *Tracker, it Item) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	d, err := r.check(ctx)
	if err != nil {
		return err
	}
	if !d.CanAdd {
		r.settle(tracker, it.Index, StatusSkipped, "", "", d.Reason)
		return nil
	}

	rec, err := r.importer.Import(ctx, it.URL)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		r.logger.Warn().Err(err).Str("url", it.URL).Msg("Recipe import failed")
		r.settle(tracker, it.Index, StatusFailed, "", "", recipe.Reason(err))
		return nil
	}

	if r.opts.DryRun || r.store == nil {
		r.settle(tracker, it.Index, StatusImported, rec.Title, "", "")
		return nil
	}

	return r.save(ctx, tracker, it, rec)
}

func (r *Runner) check(ctx context.Context) (entitlement.Decision, error) {
	if r.opts.DryRun || r.store == nil {
		return entitlement.Decision{CanAdd: true}, nil
	}
	r.admit.Lock()
	defer r.admit.Unlock()

	count, err := r.store.CountRecettes(ctx)
	if err != nil {
		return entitlement.Decision{}, err
	}
	return r.gate.CanAddRecette(count), nil
}

// save re-checks the quota because other items may have been stored while
// this one was being imported.
func (r *Runner) save(ctx context.Context, tracker *Tracker, it Item, rec *recipe.Recipe) error {
	r.admit.Lock()
	defer r.admit.Unlock()

	count, err := r.store.CountRecettes(ctx)
	if err != nil {
		return err
	}
	if d := r.gate.CanAddRecette(count); !d.CanAdd {
		r.settle(tracker, it.Index, StatusSkipped, rec.Title, "", d.Reason)
		return nil
	}

	id, err := r.store.AddRecette(ctx, rec)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		r.settle(tracker, it.Index, StatusDuplicate, rec.Title, id, "already in library")
		return nil
	case err != nil:
		return err
	}

	r.logger.Info().Str("url", it.URL).Str("id", id).Str("category", string(rec.Category)).Msg("Recipe saved")
	r.settle(tracker, it.Index, StatusImported, rec.Title, id, "")
	return nil
}

func (r *Runner) settle(tracker *Tracker, index int, status, title, id, reason string) {
	tracker.Update(index, status, title, id, reason)
	if r.opts.OnItem == nil {
		return
	}
	r.report.Lock()
	defer r.report.Unlock()
	r.opts.OnItem(tracker.item(index), tracker.GetProgress())
}
