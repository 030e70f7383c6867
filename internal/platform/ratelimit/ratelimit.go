// Package ratelimit provides a sliding-window rate limiter keyed by client
// IP. It protects the login endpoint from brute forcing and keeps search
// traffic to the public court portal within polite bounds.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// Limiter tracks request timestamps per key in a sliding window. The window
// slides continuously, so bursts at a boundary cannot double the rate.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string][]time.Time
}

// New creates a limiter allowing limit requests per window per key.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string][]time.Time),
	}
}

// Allow checks whether a request under key may proceed and records it if so.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	timestamps := l.prune(key, now)

	if len(timestamps) >= l.limit {
		return Result{Allowed: false, ResetAt: timestamps[0].Add(l.window), Limit: l.limit}
	}

	timestamps = append(timestamps, now)
	l.buckets[key] = timestamps
	return Result{
		Allowed:   true,
		Remaining: l.limit - len(timestamps),
		ResetAt:   timestamps[0].Add(l.window),
		Limit:     l.limit,
	}
}

// Reset clears the counter for a key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// prune drops timestamps older than the window. Caller holds the lock.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	timestamps := l.buckets[key]
	i := 0
	for ; i < len(timestamps); i++ {
		if timestamps[i].After(cutoff) {
			break
		}
	}
	timestamps = timestamps[i:]
	if len(timestamps) == 0 {
		delete(l.buckets, key)
	} else {
		l.buckets[key] = timestamps
	}
	return timestamps
}

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// ByIP is middleware that rate limits requests by client IP. Responses carry
// X-RateLimit headers regardless of outcome.
func (l *Limiter) ByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l == nil {
			next.ServeHTTP(w, r)
			return
		}

		result := l.Allow(requestcontext.ClientIP(r.Context()))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many requests from this address. Please try again later.",
				RetryAfter: retryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
