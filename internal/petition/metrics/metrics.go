package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for petition document generation.
type Metrics struct {
	// Documents rendered, by petition kind.
	DocumentsRendered *prometheus.CounterVec

	// Failed renders, by petition kind.
	RenderFailures *prometheus.CounterVec

	// Time to render and package one request's documents.
	PackageLatency prometheus.Histogram
}

// New creates a Metrics instance with all petition module metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_petition_documents_rendered_total",
			Help: "Total petition documents rendered, by petition kind",
		}, []string{"kind"}),

		RenderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_petition_render_failures_total",
			Help: "Total petition document renders that failed, by petition kind",
		}, []string{"kind"}),

		PackageLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleanslate_petition_package_duration_seconds",
			Help:    "Duration of rendering and zipping one petitions request",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// IncrementRendered records a successfully rendered document.
func (m *Metrics) IncrementRendered(kind string) {
	if m != nil {
		m.DocumentsRendered.WithLabelValues(kind).Inc()
	}
}

// IncrementRenderFailures records a failed render.
func (m *Metrics) IncrementRenderFailures(kind string) {
	if m != nil {
		m.RenderFailures.WithLabelValues(kind).Inc()
	}
}

// ObservePackageLatency records the duration of one package build.
func (m *Metrics) ObservePackageLatency(d time.Duration) {
	if m != nil {
		m.PackageLatency.Observe(d.Seconds())
	}
}
