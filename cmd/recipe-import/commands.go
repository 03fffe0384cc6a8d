package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcosevegrand/recipe-import/internal/batch"
	"github.com/marcosevegrand/recipe-import/internal/config"
	"github.com/marcosevegrand/recipe-import/internal/output"
	"github.com/marcosevegrand/recipe-import/internal/recipe"
	"github.com/marcosevegrand/recipe-import/internal/storage"
)

func printHeader(w io.Writer, cfg *config.Config, f flags) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintf(w, "🍳 %s v%s\n", AppName, AppVersion)
	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintf(w, "📚 Library: %s\n", cfg.Library.Path)
	if f.dryRun {
		fmt.Fprintln(w, "🔍 Dry run: nothing will be saved")
	}
	if len(cfg.Sites) > 0 {
		fmt.Fprintf(w, "🧭 Configured site rules: %d\n", len(cfg.Sites))
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))
}

func (a *app) importOne(ctx context.Context, w io.Writer, rawURL string, dryRun, jsonOut bool) int {
	if !dryRun {
		count, err := a.store.CountRecettes(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return 1
		}
		if d := a.gate.CanAddRecette(count); !d.CanAdd {
			fmt.Fprintf(w, "⛔ %s\n", d.Reason)
			return 1
		}
	}

	fmt.Fprintf(w, "\n⏳ Importing: %s\n", rawURL)

	r, trace, err := a.importer.ImportWithTrace(ctx, rawURL)
	if err != nil {
		fmt.Fprintf(w, "  ✗ %s\n", recipe.Reason(err))
		a.logger.Debug().Err(err).Str("url", rawURL).Msg("Import failed")
		return 1
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return 1
		}
	} else {
		printRecipe(w, r)
		fmt.Fprintf(w, "  🔬 Strategy: %s\n", trace.Strategy)
	}

	if dryRun {
		return 0
	}

	id, err := a.store.AddRecette(ctx, r)
	switch {
	case errors.Is(err, storage.ErrDuplicate):
		fmt.Fprintf(w, "  ℹ Already in library (%s)\n", id)
	case err != nil:
		fmt.Fprintf(os.Stderr, "❌ Failed to save recipe: %v\n", err)
		return 1
	default:
		fmt.Fprintf(w, "  ✓ Saved as %s\n", id)
	}
	return 0
}

func (a *app) importBatch(ctx context.Context, w io.Writer, path string, dryRun bool) int {
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open batch file: %v\n", err)
		return 1
	}
	urls, err := batch.ReadURLs(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "\n📖 Found %d URLs to import\n\n", len(urls))

	runner := batch.NewRunner(a.importer, a.store, a.gate, batch.Options{
		Concurrency: a.cfg.Fetch.MaxConcurrent,
		DryRun:      dryRun,
		OnItem: func(it batch.Item, p batch.Progress) {
			a.metrics.BatchItem(it.Status)
			printItem(w, it, p)
		},
	}, a.logger)

	tracker, err := runner.Run(ctx, urls)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "❌ Batch import failed: %v\n", err)
		return 1
	}

	p := tracker.GetProgress()
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(w, "📊 Import Summary")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Imported: %d\n", p.Imported)
	fmt.Fprintf(w, "Already in library: %d\n", p.Duplicate)
	fmt.Fprintf(w, "Skipped (quota): %d\n", p.Skipped)
	fmt.Fprintf(w, "Failed: %d\n", p.Failed)
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if p.Total > 0 && p.Failed == p.Total {
		return 1
	}
	return 0
}

func printItem(w io.Writer, it batch.Item, p batch.Progress) {
	switch it.Status {
	case batch.StatusImported:
		fmt.Fprintf(w, "  ✓ [%d/%d] %s\n", p.Done(), p.Total, it.Title)
	case batch.StatusDuplicate:
		fmt.Fprintf(w, "  ℹ [%d/%d] %s (already in library)\n", p.Done(), p.Total, it.Title)
	default:
		fmt.Fprintf(w, "  ✗ [%d/%d] %s: %s\n", p.Done(), p.Total, it.URL, it.Reason)
	}
}

func printRecipe(w io.Writer, r *recipe.Recipe) {
	fmt.Fprintf(w, "\n✅ %s  [%s]\n", r.Title, r.Category)

	meta := make([]string, 0, 3)
	if r.PrepMinutes != nil {
		meta = append(meta, "préparation "+output.FormatDuration(*r.PrepMinutes))
	}
	if r.CookMinutes != nil {
		meta = append(meta, "cuisson "+output.FormatDuration(*r.CookMinutes))
	}
	if r.Servings != nil {
		meta = append(meta, fmt.Sprintf("%d personnes", *r.Servings))
	}
	if len(meta) > 0 {
		fmt.Fprintf(w, "  ⏱  %s\n", strings.Join(meta, ", "))
	}

	fmt.Fprintf(w, "  🧂 Ingrédients (%d):\n", len(r.Ingredients))
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "    • %s\n", strings.Join(strings.Fields(ing.Quantity+" "+ing.Unit+" "+ing.Name), " "))
	}

	fmt.Fprintf(w, "  📝 Étapes (%d):\n", len(r.Instructions))
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "    %d. %s\n", i+1, step)
	}
}

func (a *app) listLibrary(ctx context.Context, w io.Writer) error {
	recipes, err := a.store.ListRecettes(ctx, storage.ListFilter{})
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	fmt.Fprintf(w, "\n📚 %d recipes\n", len(recipes))
	for _, r := range recipes {
		fmt.Fprintf(w, "  %s  %-8s  %s\n", shortID(r.ID), r.Category, r.Title)
	}
	return nil
}

func (a *app) exportEPUB(ctx context.Context, w io.Writer) error {
	recipes, err := a.store.ListRecettes(ctx, storage.ListFilter{})
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	book := output.NewBook(a.cfg.Output.Title, a.cfg.Output.Author)
	book.Description = a.cfg.Output.Description
	if a.cfg.Output.Lang != "" {
		book.Lang = a.cfg.Output.Lang
	}
	for _, r := range recipes {
		book.AddRecipe(r.Recipe)
	}

	fmt.Fprintln(w, "\n📦 Generating EPUB...")
	path, err := output.GenerateEPUB(book, a.cfg.Output.OutputPath, a.logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ EPUB generated: %s\n", path)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
