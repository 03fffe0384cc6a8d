// Package observability exposes Prometheus metrics for recipe imports.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_imports_total",
		Help: "The total number of recipe imports by outcome",
	}, []string{"outcome"})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recipe_import_duration_seconds",
		Help:    "Duration of a full recipe import",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	StageResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_extraction_stage_results_total",
		Help: "Extraction stage results by stage and kind",
	}, []string{"stage", "result"})

	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_fetch_attempts_total",
		Help: "Fetch attempts by outcome",
	}, []string{"status"})

	BatchItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_batch_items_total",
		Help: "Batch items settled by status",
	}, []string{"status"})
)

// Recorder feeds pipeline events into the package metrics.
type Recorder struct{}

func (Recorder) StageResult(stage, result string) {
	StageResults.WithLabelValues(stage, result).Inc()
}

func (Recorder) ImportFinished(outcome string, elapsed time.Duration) {
	ImportsTotal.WithLabelValues(outcome).Inc()
	ImportDuration.Observe(elapsed.Seconds())
}

func (Recorder) FetchAttempt(status string) {
	FetchAttempts.WithLabelValues(status).Inc()
}

func (Recorder) BatchItem(status string) {
	BatchItems.WithLabelValues(status).Inc()
}
