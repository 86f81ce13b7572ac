package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// water-level service.
type Metrics struct {
	FeedFetches      *prometheus.CounterVec // labels: outcome={success,error}
	FeedFetchSeconds prometheus.Histogram
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss}
	FallbacksServed  prometheus.Counter
	StatusChanges    prometheus.Counter
	AlertsPublished  *prometheus.CounterVec // labels: outcome={success,error}
	ReadingsRecorded prometheus.Counter
	LastRefresh      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchSeconds,
		m.CacheLookups,
		m.FallbacksServed,
		m.StatusChanges,
		m.AlertsPublished,
		m.ReadingsRecorded,
		m.LastRefresh,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "feed_fetches_total",
			Help:      "USGS instantaneous-values requests by outcome.",
		}, []string{"outcome"}),
		FeedFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "river_conditions",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of USGS batch fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "cache_lookups_total",
			Help:      "Water-level cache lookups by result.",
		}, []string{"result"}),
		FallbacksServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "fallbacks_served_total",
			Help:      "Responses served from synthesized fallback data.",
		}),
		StatusChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "status_changes_total",
			Help:      "Station status transitions observed between refreshes.",
		}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "alerts_published_total",
			Help:      "Status-change alerts published by outcome.",
		}, []string{"outcome"}),
		ReadingsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "river_conditions",
			Name:      "readings_recorded_total",
			Help:      "Station readings persisted to the history store.",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "river_conditions",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful upstream refresh.",
		}),
	}
}
