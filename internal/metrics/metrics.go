// Package metrics provides Prometheus metrics for the feed engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricFeedRequestsTotal      = "feed_requests_total"
	MetricFeedFallbacksTotal     = "feed_fallbacks_total"
	MetricFeedDurationSeconds    = "feed_generation_duration_seconds"
	MetricReactionsTotal         = "reactions_total"
	MetricReactionFailuresTotal  = "reaction_failures_total"
	MetricHTTPRequestDuration    = "http_request_duration_seconds"
	MetricHTTPRequestsTotal      = "http_requests_total"
	MetricClassifierCacheHits    = "classifier_cache_hits_total"
	MetricClassifierCacheMisses  = "classifier_cache_misses_total"
)

// Transition constants for labeling reaction outcomes.
const (
	TransitionAdded   = "added"
	TransitionRemoved = "removed"
	TransitionSwapped = "swapped"
)

// Metrics contains the engine's Prometheus collectors.
// All operations are safe for concurrent use, and all methods are
// nil-safe so metrics can be disabled by wiring a nil *Metrics.
type Metrics struct {
	feedRequests        prometheus.Counter
	feedFallbacks       prometheus.Counter
	feedDuration        prometheus.Histogram
	reactions           *prometheus.CounterVec
	reactionFailures    *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to
// register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		feedRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFeedRequestsTotal,
			Help: "Total number of feed generation requests",
		}),
		feedFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFeedFallbacksTotal,
			Help: "Total number of feed requests served from the default feed",
		}),
		feedDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricFeedDurationSeconds,
			Help:    "Histogram of end-to-end feed generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}),
		reactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricReactionsTotal,
				Help: "Total number of reaction transitions by type and outcome",
			},
			[]string{"reaction_type", "transition"},
		),
		reactionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricReactionFailuresTotal,
				Help: "Total number of failed reaction operations by stage",
			},
			[]string{"stage"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.0},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.feedRequests,
		m.feedFallbacks,
		m.feedDuration,
		m.reactions,
		m.reactionFailures,
		m.httpRequestDuration,
		m.httpRequestsTotal,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncFeedRequests increments the feed request counter.
func (m *Metrics) IncFeedRequests() {
	if m == nil {
		return
	}
	m.feedRequests.Inc()
}

// IncFeedFallbacks increments the fallback-served counter.
func (m *Metrics) IncFeedFallbacks() {
	if m == nil {
		return
	}
	m.feedFallbacks.Inc()
}

// ObserveFeedDuration records one feed generation duration sample.
func (m *Metrics) ObserveFeedDuration(seconds float64) {
	if m == nil {
		return
	}
	m.feedDuration.Observe(seconds)
}

// IncReactions increments the reaction transition counter.
// transition: TransitionAdded, TransitionRemoved, or TransitionSwapped.
func (m *Metrics) IncReactions(reactionType, transition string) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues(reactionType, transition).Inc()
}

// IncReactionFailures increments the reaction failure counter.
// stage: the pipeline stage that failed (e.g. "toggle", "affinity").
func (m *Metrics) IncReactionFailures(stage string) {
	if m == nil {
		return
	}
	m.reactionFailures.WithLabelValues(stage).Inc()
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

// RegisterClassifierCache registers gauge-style counters that read the
// classifier's cache hit and miss totals on scrape.
func RegisterClassifierCache(reg prometheus.Registerer, hits, misses func() int64) error {
	hitFunc := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: MetricClassifierCacheHits,
		Help: "Total number of classifier cache hits",
	}, func() float64 { return float64(hits()) })

	missFunc := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: MetricClassifierCacheMisses,
		Help: "Total number of classifier cache misses",
	}, func() float64 { return float64(misses()) })

	if err := reg.Register(hitFunc); err != nil {
		return err
	}
	return reg.Register(missFunc)
}
