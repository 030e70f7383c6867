package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/pkg/requestcontext"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		result := limiter.Allow("10.0.0.1")
		require.True(t, result.Allowed)
	}

	result := limiter.Allow("10.0.0.1")
	assert.False(t, result.Allowed)

	// A different key has its own window.
	assert.True(t, limiter.Allow("10.0.0.2").Allowed)
}

func TestWindowSlides(t *testing.T) {
	limiter := New(2, 20*time.Millisecond)

	require.True(t, limiter.Allow("k").Allowed)
	require.True(t, limiter.Allow("k").Allowed)
	require.False(t, limiter.Allow("k").Allowed)

	time.Sleep(25 * time.Millisecond)
	assert.True(t, limiter.Allow("k").Allowed)
}

func TestReset(t *testing.T) {
	limiter := New(1, time.Minute)
	require.True(t, limiter.Allow("k").Allowed)
	require.False(t, limiter.Allow("k").Allowed)

	limiter.Reset("k")
	assert.True(t, limiter.Allow("k").Allowed)
}

func TestByIPMiddleware(t *testing.T) {
	limiter := New(1, time.Minute)
	handler := limiter.ByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "test"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	first := request("10.0.0.1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := request("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "rate_limit_exceeded")

	// Another client is unaffected.
	assert.Equal(t, http.StatusOK, request("10.0.0.9").Code)
}

func TestNilLimiterPassesThrough(t *testing.T) {
	var limiter *Limiter
	handler := limiter.ByIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
