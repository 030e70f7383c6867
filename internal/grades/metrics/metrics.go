package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for grade suggestions.
type Metrics struct {
	// Suggestions by outcome: guessed, unknown.
	Suggestions *prometheus.CounterVec
}

// New creates a Metrics instance with all grades metrics registered.
func New() *Metrics {
	return &Metrics{
		Suggestions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_grades_suggestions_total",
			Help: "Total grade suggestions, by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementSuggestions records a suggestion outcome.
func (m *Metrics) IncrementSuggestions(outcome string) {
	if m != nil {
		m.Suggestions.WithLabelValues(outcome).Inc()
	}
}
