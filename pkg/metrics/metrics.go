package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "settlement_search"

// Metrics holds the prometheus collectors of the search service & the index builder.
type Metrics struct {
	SearchQueriesTotal    *prometheus.CounterVec
	SearchLatency         *prometheus.HistogramVec
	SearchResultsCount    prometheus.Histogram
	PartitionLoadDuration *prometheus.HistogramVec
	IndexBuildsTotal      *prometheus.CounterVec
	IndexBuildDuration    *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Search queries by outcome (ok, zero_result, invalid, unavailable, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "latency_seconds",
				Help:      "Search latency in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"cache_status"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "results_count",
				Help:      "Number of names returned per search query.",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		PartitionLoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "partition_load_seconds",
				Help:      "Time to fetch & decode the index artifact of a partition.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
			},
			[]string{"partition"},
		),
		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "index_builds_total",
				Help:      "Partition index builds by outcome.",
			},
			[]string{"partition", "outcome"},
		),
		IndexBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "index_build_seconds",
				Help:      "Partition index build time in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"partition"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.PartitionLoadDuration,
		m.IndexBuildsTotal,
		m.IndexBuildDuration,
	)
	return m
}

func (m *Metrics) ObserveSearch(outcome string, cacheStatus string, results int, took time.Duration) {
	m.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	m.SearchLatency.WithLabelValues(cacheStatus).Observe(took.Seconds())
	m.SearchResultsCount.Observe(float64(results))
}

func (m *Metrics) ObserveLoad(partition string, took time.Duration) {
	m.PartitionLoadDuration.WithLabelValues(partition).Observe(took.Seconds())
}

func (m *Metrics) ObserveBuild(partition string, outcome string, took time.Duration) {
	m.IndexBuildsTotal.WithLabelValues(partition, outcome).Inc()
	m.IndexBuildDuration.WithLabelValues(partition).Observe(took.Seconds())
}

// Handler returns the scrape handler of the registry the collectors live in.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
