// Package httptransport assembles the API router. Feature handlers register
// their own routes; this package decides middleware and which routes need an
// authenticated user.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cleanslate/internal/audit"
	"cleanslate/internal/platform/metrics"
	"cleanslate/internal/platform/middleware"
	"cleanslate/internal/platform/ratelimit"
	"cleanslate/pkg/platform/httputil"
)

// FeatureHandler registers a feature's routes on a router.
type FeatureHandler interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router wires together.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.TokenValidator

	Auth          FeatureHandler
	Profile       FeatureHandler
	SourceRecords FeatureHandler
	Analysis      FeatureHandler
	Petitions     FeatureHandler
	UJS           FeatureHandler
	Grades        FeatureHandler
	Activity      FeatureHandler

	// AuthLimit throttles credential endpoints; SearchLimit throttles court
	// portal searches. Either may be nil to disable.
	AuthLimit   *ratelimit.Limiter
	SearchLimit *ratelimit.Limiter

	// AuditEvents receives an event per authenticated mutating request.
	// Nil disables the trail.
	AuditEvents chan<- audit.Event

	// Optional dependency healthchecks reported by /health.
	Checks map[string]HealthChecker
}

// NewRouter builds the full API router.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(deps.Metrics.Middleware)
	r.Use(middleware.Authenticate(deps.Validator, deps.Logger))

	r.Get("/health", handleHealth(deps.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Anyone may register, log in, or ask for a grade guess. Credential
		// endpoints are throttled to slow down password guessing.
		api.Group(func(public chi.Router) {
			public.Use(deps.AuthLimit.ByIP)
			deps.Auth.Register(public)
		})
		api.Group(func(public chi.Router) {
			deps.Grades.Register(public)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			if deps.AuditEvents != nil {
				authed.Use(audit.Middleware(deps.AuditEvents))
			}
			deps.Profile.Register(authed)
			deps.SourceRecords.Register(authed)
			deps.Analysis.Register(authed)
			deps.Petitions.Register(authed)
			if deps.Activity != nil {
				deps.Activity.Register(authed)
			}

			authed.Group(func(searches chi.Router) {
				searches.Use(deps.SearchLimit.ByIP)
				deps.UJS.Register(searches)
			})
		})
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		status := http.StatusOK
		for name, check := range checks {
			if err := check.Health(r.Context()); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
