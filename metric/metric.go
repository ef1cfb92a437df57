// Package metric provides Prometheus metrics for training data processing.
// Metrics are optional: the training package only records them when a
// Metrics instance is injected.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics contains all corpus-level metrics.
type Metrics struct {
	// DatasetsConstructed counts TrainingData instances built, including
	// the instances produced by merges.
	DatasetsConstructed prometheus.Counter

	// ExamplesIngested counts training examples held by constructed
	// datasets. Merged examples are counted again in the merged dataset.
	ExamplesIngested prometheus.Counter

	// MergesTotal counts merge operations.
	MergesTotal prometheus.Counter

	// ValidationWarnings counts validation and merge warnings by kind.
	ValidationWarnings *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all corpus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DatasetsConstructed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nludata",
				Subsystem: "datasets",
				Name:      "constructed_total",
				Help:      "Total number of TrainingData instances constructed",
			},
		),

		ExamplesIngested: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nludata",
				Subsystem: "examples",
				Name:      "ingested_total",
				Help:      "Total number of training examples held by constructed datasets",
			},
		),

		MergesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nludata",
				Subsystem: "datasets",
				Name:      "merges_total",
				Help:      "Total number of merge operations",
			},
		),

		ValidationWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nludata",
				Subsystem: "validation",
				Name:      "warnings_total",
				Help:      "Total number of validation warnings by kind",
			},
			[]string{"kind"},
		),
	}
}

// Registry bundles corpus metrics with the Prometheus registry they are
// registered on, so callers can expose them over a standard handler.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a registry with all corpus metrics plus the Go
// runtime and process collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	r.prometheusRegistry.MustRegister(
		r.Metrics.DatasetsConstructed,
		r.Metrics.ExamplesIngested,
		r.Metrics.MergesTotal,
		r.Metrics.ValidationWarnings,
	)

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}
