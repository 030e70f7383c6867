package ujs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	dErrors "cleanslate/pkg/domain-errors"
)

// Client talks to the UJS docket search service. The service wraps the UJS
// portal's case search and answers with docket lists per court.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient constructs a search client for the service at baseURL. A nil
// http client uses a default with a timeout; portal searches are slow.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

type nameSearchPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob,omitempty"`
}

type docketSearchPayload struct {
	DocketNumber string `json:"docket_number"`
}

type searchResponse struct {
	Status  string   `json:"status"`
	Dockets []Docket `json:"dockets"`
}

// SearchName searches one court for a person's dockets. dob is optional and
// narrows the search when the name is common.
func (c *Client) SearchName(ctx context.Context, court Court, firstName, lastName, dob string) (CourtResults, error) {
	payload := nameSearchPayload{FirstName: firstName, LastName: lastName, DOB: dob}
	return c.post(ctx, fmt.Sprintf("%s/searchName/%s", c.baseURL, court), payload)
}

// SearchNameAllCourts searches CP and MDJ concurrently. A court that errors
// contributes an empty result with the error as its message, so one slow or
// broken court doesn't hide the other's dockets.
func (c *Client) SearchNameAllCourts(ctx context.Context, firstName, lastName, dob string) (SearchResults, error) {
	results := make(SearchResults, len(Courts))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, court := range Courts {
		court := court
		g.Go(func() error {
			courtResults, err := c.SearchName(ctx, court, firstName, lastName, dob)
			if err != nil {
				courtResults = CourtResults{Dockets: []Docket{}, Msg: err.Error()}
			}
			mu.Lock()
			results[court] = courtResults
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchDocket looks up one docket number in one court.
func (c *Client) SearchDocket(ctx context.Context, court Court, docketNumber string) (CourtResults, error) {
	payload := docketSearchPayload{DocketNumber: docketNumber}
	return c.post(ctx, fmt.Sprintf("%s/lookupDocket/%s", c.baseURL, court), payload)
}

func (c *Client) post(ctx context.Context, url string, payload any) (CourtResults, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return CourtResults{}, dErrors.Wrap(err, dErrors.CodeInternal, "encode search request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return CourtResults{}, dErrors.Wrap(err, dErrors.CodeInternal, "build search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return CourtResults{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "docket search failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CourtResults{}, dErrors.Newf(dErrors.CodeUnavailable,
			"docket search returned status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return CourtResults{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "decode search response")
	}
	if decoded.Dockets == nil {
		decoded.Dockets = []Docket{}
	}
	return CourtResults{Dockets: decoded.Dockets, Msg: decoded.Status}, nil
}
