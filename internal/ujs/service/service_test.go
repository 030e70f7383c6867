package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/ujs"
)

type fakeSearcher struct {
	nameCalls   int
	docketCalls int
	results     ujs.SearchResults
	courtAsked  ujs.Court
}

func (f *fakeSearcher) SearchNameAllCourts(_ context.Context, _, _, _ string) (ujs.SearchResults, error) {
	f.nameCalls++
	return f.results, nil
}

func (f *fakeSearcher) SearchDocket(_ context.Context, court ujs.Court, _ string) (ujs.CourtResults, error) {
	f.docketCalls++
	f.courtAsked = court
	return f.results[court], nil
}

type mapCache struct {
	entries map[string]string
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	value, ok := c.entries[key]
	if !ok {
		return "", ujs.ErrCacheMiss
	}
	return value, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func newTestService(searcher *fakeSearcher) (*Service, *mapCache) {
	cache := &mapCache{entries: map[string]string{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(searcher, cache, time.Minute, logger, nil), cache
}

func searchHit() ujs.SearchResults {
	return ujs.SearchResults{
		ujs.CourtCP: {
			Dockets: []ujs.Docket{{DocketNumber: "CP-51-CR-0000100-2015", Caption: "Comm. v. Smith"}},
			Msg:     "Success",
		},
		ujs.CourtMDJ: {Dockets: []ujs.Docket{}, Msg: "Search completed. No dockets found."},
	}
}

func TestSearchByNameCaches(t *testing.T) {
	searcher := &fakeSearcher{results: searchHit()}
	svc, cache := newTestService(searcher)
	ctx := context.Background()

	first, err := svc.SearchByName(ctx, "Jane", "Smith", "1980-04-15")
	require.NoError(t, err)
	require.Len(t, first[ujs.CourtCP].Dockets, 1)
	assert.Equal(t, 1, searcher.nameCalls)
	assert.Len(t, cache.entries, 1)

	second, err := svc.SearchByName(ctx, "Jane", "Smith", "1980-04-15")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, searcher.nameCalls, "second search should come from the cache")
}

func TestSearchByNameDifferentQueriesMiss(t *testing.T) {
	searcher := &fakeSearcher{results: searchHit()}
	svc, _ := newTestService(searcher)
	ctx := context.Background()

	_, err := svc.SearchByName(ctx, "Jane", "Smith", "")
	require.NoError(t, err)
	_, err = svc.SearchByName(ctx, "John", "Smith", "")
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.nameCalls)
}

func TestSearchByNameWithoutCache(t *testing.T) {
	searcher := &fakeSearcher{results: searchHit()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(searcher, nil, 0, logger, nil)

	_, err := svc.SearchByName(context.Background(), "Jane", "Smith", "")
	require.NoError(t, err)
	_, err = svc.SearchByName(context.Background(), "Jane", "Smith", "")
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.nameCalls)
}

func TestSearchByDocketInfersCourt(t *testing.T) {
	searcher := &fakeSearcher{results: searchHit()}
	svc, _ := newTestService(searcher)
	ctx := context.Background()

	results, err := svc.SearchByDocket(ctx, "CP-51-CR-0000100-2015")
	require.NoError(t, err)
	assert.Equal(t, ujs.CourtCP, searcher.courtAsked)
	require.Contains(t, results, ujs.CourtCP)
	assert.Len(t, results[ujs.CourtCP].Dockets, 1)

	searcher.results = ujs.SearchResults{ujs.CourtMDJ: {Dockets: []ujs.Docket{}, Msg: "Success"}}
	_, err = svc.SearchByDocket(ctx, "MJ-51301-CR-0000100-2015")
	require.NoError(t, err)
	assert.Equal(t, ujs.CourtMDJ, searcher.courtAsked)
}
