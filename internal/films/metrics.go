package films

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidParameter  = "invalid_parameter"
	OutcomeNotFound          = "not_found"
	OutcomeSourceUnavailable = "source_unavailable"
)

// Metrics holds the Prometheus collectors for film queries.
type Metrics struct {
	queries   *prometheus.CounterVec
	duration  prometheus.Histogram
	results   prometheus.Histogram
	malformed *prometheus.CounterVec
}

// NewMetrics registers the film query collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oscars",
			Name:      "film_queries_total",
			Help:      "Film queries served, by collection and outcome.",
		}, []string{"collection", "outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oscars",
			Name:      "film_query_duration_seconds",
			Help:      "Time spent loading, filtering and sorting a collection.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		results: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "oscars",
			Name:      "film_query_results",
			Help:      "Number of films returned per successful query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		malformed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oscars",
			Name:      "malformed_records_total",
			Help:      "Stored films skipped because a property failed to decode.",
		}, []string{"collection"}),
	}
}

func (m *Metrics) observeQuery(collection, outcome string, started time.Time, results int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(collection, outcome).Inc()
	m.duration.Observe(time.Since(started).Seconds())
	if outcome == OutcomeOK {
		m.results.Observe(float64(results))
	}
}

func (m *Metrics) malformedRecord(collection string) {
	if m == nil {
		return
	}
	m.malformed.WithLabelValues(collection).Inc()
}
