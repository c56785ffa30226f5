// Package metrics exposes Prometheus collectors for search runs.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeFound     = "found"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
)

// Collector groups the search collectors registered on one registry
// A nil *Collector is valid and records nothing
type Collector struct {
	searches   *prometheus.CounterVec
	duration   prometheus.Histogram
	expanded   prometheus.Histogram
	pathLength prometheus.Histogram
	steps      *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astral_search_total",
			Help: "Total searches by outcome",
		}, []string{"outcome"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astral_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),

		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astral_search_expanded_cells",
			Help:    "Cells expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),

		pathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astral_search_path_cells",
			Help:    "Cells on the found path",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),

		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astral_search_steps_total",
			Help: "Step events emitted by kind",
		}, []string{"kind"}),
	}
}

// ObserveInvalid counts a rejected search request
func (c *Collector) ObserveInvalid() {
	if c == nil {
		return
	}
	c.searches.WithLabelValues(OutcomeInvalid).Inc()
}

// ObserveError classifies a failed run
func (c *Collector) ObserveError(err error) {
	if c == nil || err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.searches.WithLabelValues(OutcomeCancelled).Inc()
		return
	}
	c.searches.WithLabelValues(OutcomeInvalid).Inc()
}

// ObserveRun records a completed run
// steps maps step kind names to their counts
func (c *Collector) ObserveRun(found bool, elapsed time.Duration, expanded, pathLen int, steps map[string]int) {
	if c == nil {
		return
	}
	outcome := OutcomeNotFound
	if found {
		outcome = OutcomeFound
		c.pathLength.Observe(float64(pathLen))
	}
	c.searches.WithLabelValues(outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
	c.expanded.Observe(float64(expanded))
	for kind, n := range steps {
		c.steps.WithLabelValues(kind).Add(float64(n))
	}
}
