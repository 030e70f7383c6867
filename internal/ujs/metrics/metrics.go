package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for UJS docket searches.
type Metrics struct {
	// Searches by kind (name, docket) and outcome (ok, failed).
	Searches *prometheus.CounterVec

	// Cache lookups by result (hit, miss, error).
	CacheLookups *prometheus.CounterVec
}

// New creates a Metrics instance with all UJS metrics registered.
func New() *Metrics {
	return &Metrics{
		Searches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_ujs_searches_total",
			Help: "Total UJS docket searches, by kind and outcome",
		}, []string{"kind", "outcome"}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_ujs_cache_lookups_total",
			Help: "Total UJS search cache lookups, by result",
		}, []string{"result"}),
	}
}

// IncrementSearches records a search outcome.
func (m *Metrics) IncrementSearches(kind, outcome string) {
	if m != nil {
		m.Searches.WithLabelValues(kind, outcome).Inc()
	}
}

// IncrementCacheLookups records a cache lookup result.
func (m *Metrics) IncrementCacheLookups(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
