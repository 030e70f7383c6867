package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/platform/ratelimit"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/testutil"
)

type stubHandler struct {
	path string
}

func (s stubHandler) Register(r chi.Router) {
	r.Get(s.path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

type stubValidator struct {
	userID id.UserID
}

func (v stubValidator) Validate(tokenString string) (id.UserID, error) {
	if tokenString == "good" {
		return v.userID, nil
	}
	return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "token is invalid")
}

type failingCheck struct{}

func (failingCheck) Health(context.Context) error { return errors.New("connection refused") }

type okCheck struct{}

func (okCheck) Health(context.Context) error { return nil }

func newDeps() Deps {
	return Deps{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Validator:     stubValidator{userID: id.NewUserID()},
		Auth:          stubHandler{path: "/auth/ping"},
		Profile:       stubHandler{path: "/profile/"},
		SourceRecords: stubHandler{path: "/sourcerecords/"},
		Analysis:      stubHandler{path: "/analysis/"},
		Petitions:     stubHandler{path: "/templates/"},
		UJS:           stubHandler{path: "/ujs/ping"},
		Grades:        stubHandler{path: "/grades/ping"},
	}
}

func TestHealthEndpoint(t *testing.T) {
	deps := newDeps()
	deps.Checks = map[string]HealthChecker{"postgres": okCheck{}}
	router := NewRouter(deps)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[healthResponse](t, rr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Checks["postgres"])
}

func TestHealthEndpointDegraded(t *testing.T) {
	deps := newDeps()
	deps.Checks = map[string]HealthChecker{"redis": failingCheck{}}
	router := NewRouter(deps)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	resp := testutil.UnmarshalResponse[healthResponse](t, rr)
	assert.Equal(t, "degraded", resp.Status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := NewRouter(newDeps())

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/profile/"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	req := testutil.NewRequest(t, http.MethodGet, "/api/profile/")
	req.Header.Set("Authorization", "Bearer good")
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestBadTokenRejectedEvenOnPublicRoutes(t *testing.T) {
	router := NewRouter(newDeps())

	req := testutil.NewRequest(t, http.MethodGet, "/api/grades/ping")
	req.Header.Set("Authorization", "Bearer forged")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := NewRouter(newDeps())

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/grades/ping"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/auth/ping"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestAuthRoutesAreThrottled(t *testing.T) {
	deps := newDeps()
	deps.AuthLimit = ratelimit.New(2, time.Minute)
	router := NewRouter(deps)

	for i := 0; i < 2; i++ {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/auth/ping"))
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/auth/ping"))
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(newDeps())

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}
