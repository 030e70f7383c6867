package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the analysis module.
type Metrics struct {
	// Full analysis latency, including every rule.
	AnalyzeLatency prometheus.Histogram

	// Petitions proposed, by petition type.
	PetitionsProposed *prometheus.CounterVec

	// Records screened for automated sealing, by whether anything was
	// eligible.
	ScreeningsTotal *prometheus.CounterVec
}

// New creates a Metrics instance with all analysis module metrics registered.
func New() *Metrics {
	return &Metrics{
		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleanslate_analysis_duration_seconds",
			Help:    "Duration of a full record analysis",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		PetitionsProposed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_analysis_petitions_proposed_total",
			Help: "Total petitions proposed by analyses, by petition type",
		}, []string{"petition_type"}),

		ScreeningsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_analysis_screenings_total",
			Help: "Total automated sealing screenings, by outcome",
		}, []string{"outcome"}), // outcome: "eligible", "ineligible"
	}
}

// ObserveAnalyzeLatency records the duration of a full analysis.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}

// IncrementPetitionsProposed records a proposed petition.
func (m *Metrics) IncrementPetitionsProposed(petitionType string) {
	if m != nil {
		m.PetitionsProposed.WithLabelValues(petitionType).Inc()
	}
}

// IncrementScreenings records a screening outcome.
func (m *Metrics) IncrementScreenings(outcome string) {
	if m != nil {
		m.ScreeningsTotal.WithLabelValues(outcome).Inc()
	}
}
