package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the source record module.
type Metrics struct {
	// Fetch jobs, by outcome: enqueued, processed, failed, malformed.
	FetchJobs *prometheus.CounterVec

	// Document downloads, by outcome: ok, failed.
	Downloads *prometheus.CounterVec

	// Source record parses, by outcome: ok, failed.
	Parses *prometheus.CounterVec

	// Time to download one document.
	DownloadLatency prometheus.Histogram
}

// New creates a Metrics instance with all source record metrics registered.
func New() *Metrics {
	return &Metrics{
		FetchJobs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_sourcerecord_fetch_jobs_total",
			Help: "Total fetch queue jobs, by outcome",
		}, []string{"outcome"}),

		Downloads: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_sourcerecord_downloads_total",
			Help: "Total document downloads, by outcome",
		}, []string{"outcome"}),

		Parses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_sourcerecord_parses_total",
			Help: "Total source record parses, by outcome",
		}, []string{"outcome"}),

		DownloadLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cleanslate_sourcerecord_download_duration_seconds",
			Help:    "Duration of one document download",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementFetchJobs records a fetch job outcome.
func (m *Metrics) IncrementFetchJobs(outcome string) {
	if m != nil {
		m.FetchJobs.WithLabelValues(outcome).Inc()
	}
}

// IncrementDownloads records a download outcome.
func (m *Metrics) IncrementDownloads(outcome string) {
	if m != nil {
		m.Downloads.WithLabelValues(outcome).Inc()
	}
}

// IncrementParses records a parse outcome.
func (m *Metrics) IncrementParses(outcome string) {
	if m != nil {
		m.Parses.WithLabelValues(outcome).Inc()
	}
}

// ObserveDownloadLatency records the duration of one download.
func (m *Metrics) ObserveDownloadLatency(d time.Duration) {
	if m != nil {
		m.DownloadLatency.Observe(d.Seconds())
	}
}
