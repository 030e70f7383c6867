package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for account operations.
type Metrics struct {
	// Registrations by outcome: ok, conflict, failed.
	Registrations *prometheus.CounterVec

	// Logins by outcome: ok, rejected, failed.
	Logins *prometheus.CounterVec
}

// New creates a Metrics instance with all auth metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_auth_registrations_total",
			Help: "Total account registrations, by outcome",
		}, []string{"outcome"}),

		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cleanslate_auth_logins_total",
			Help: "Total login attempts, by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementRegistrations records a registration outcome.
func (m *Metrics) IncrementRegistrations(outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(outcome).Inc()
	}
}

// IncrementLogins records a login outcome.
func (m *Metrics) IncrementLogins(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}
