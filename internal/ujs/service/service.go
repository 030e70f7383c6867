// Package service runs UJS docket searches through a cache. Portal searches
// take seconds, and a user typically reruns the same search while picking out
// documents, so hits are served from redis for a retention period.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cleanslate/internal/ujs"
	"cleanslate/internal/ujs/metrics"
	"cleanslate/pkg/requestcontext"
)

// DefaultCacheTTL is how long search results stay in the cache.
const DefaultCacheTTL = 15 * time.Minute

// Searcher runs docket searches. *ujs.Client implements it.
type Searcher interface {
	SearchNameAllCourts(ctx context.Context, firstName, lastName, dob string) (ujs.SearchResults, error)
	SearchDocket(ctx context.Context, court ujs.Court, docketNumber string) (ujs.CourtResults, error)
}

// Service caches docket searches.
type Service struct {
	searcher Searcher
	cache    ujs.Cache
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// New constructs a UJS search service. A nil cache disables caching.
func New(searcher Searcher, cache ujs.Cache, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		searcher: searcher,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
		metrics:  m,
		tracer:   otel.Tracer("cleanslate/ujs"),
	}
}

// SearchByName searches all courts for a person's dockets.
func (s *Service) SearchByName(ctx context.Context, firstName, lastName, dob string) (ujs.SearchResults, error) {
	ctx, span := s.tracer.Start(ctx, "ujs.SearchByName")
	defer span.End()

	key := strings.ToLower(strings.Join([]string{"name", lastName, firstName, dob}, "|"))
	if results, ok := s.cached(ctx, key); ok {
		return results, nil
	}

	results, err := s.searcher.SearchNameAllCourts(ctx, firstName, lastName, dob)
	if err != nil {
		s.metrics.IncrementSearches("name", "failed")
		return nil, err
	}
	s.metrics.IncrementSearches("name", "ok")
	s.store(ctx, key, results)

	s.logger.InfoContext(ctx, "ujs name search",
		"request_id", requestcontext.RequestID(ctx),
		"cp_dockets", len(results[ujs.CourtCP].Dockets),
		"mdj_dockets", len(results[ujs.CourtMDJ].Dockets),
	)
	return results, nil
}

// SearchByDocket looks up one docket number. The court is inferred from the
// number's prefix: MJ numbers go to MDJ, everything else to CP.
func (s *Service) SearchByDocket(ctx context.Context, docketNumber string) (ujs.SearchResults, error) {
	ctx, span := s.tracer.Start(ctx, "ujs.SearchByDocket",
		trace.WithAttributes(attribute.String("docket_number", docketNumber)))
	defer span.End()

	court := ujs.CourtCP
	if strings.HasPrefix(strings.ToUpper(docketNumber), "MJ") {
		court = ujs.CourtMDJ
	}

	key := strings.ToLower("docket|" + docketNumber)
	if results, ok := s.cached(ctx, key); ok {
		return results, nil
	}

	courtResults, err := s.searcher.SearchDocket(ctx, court, docketNumber)
	if err != nil {
		s.metrics.IncrementSearches("docket", "failed")
		return nil, err
	}
	s.metrics.IncrementSearches("docket", "ok")

	results := ujs.SearchResults{court: courtResults}
	s.store(ctx, key, results)
	return results, nil
}

func (s *Service) cached(ctx context.Context, key string) (ujs.SearchResults, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ujs.ErrCacheMiss) {
			s.metrics.IncrementCacheLookups("error")
			s.logger.WarnContext(ctx, "ujs cache read failed", "error", err)
			return nil, false
		}
		s.metrics.IncrementCacheLookups("miss")
		return nil, false
	}
	var results ujs.SearchResults
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		s.metrics.IncrementCacheLookups("error")
		return nil, false
	}
	s.metrics.IncrementCacheLookups("hit")
	return results, true
}

func (s *Service) store(ctx context.Context, key string, results ujs.SearchResults) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.WarnContext(ctx, "ujs cache write failed", "error", err)
	}
}
