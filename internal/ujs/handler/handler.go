// Package handler exposes UJS docket searches over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/ujs"
	"cleanslate/pkg/platform/httputil"
)

// Service defines the search operations the handler needs.
type Service interface {
	SearchByName(ctx context.Context, firstName, lastName, dob string) (ujs.SearchResults, error)
	SearchByDocket(ctx context.Context, docketNumber string) (ujs.SearchResults, error)
}

// Handler wires search endpoints to the search service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a UJS search handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts search endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ujs/search/name/", h.HandleSearchByName)
	r.Post("/ujs/search/docket/", h.HandleSearchByDocket)
}

// SearchEnvelope wraps results the way the frontend expects them.
type SearchEnvelope struct {
	SearchResults ujs.SearchResults `json:"searchResults"`
}

// HandleSearchByName handles POST /ujs/search/name/.
func (h *Handler) HandleSearchByName(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[SearchNameRequest](w, r, h.logger)
	if !ok {
		return
	}
	results, err := h.service.SearchByName(r.Context(), req.FirstName, req.LastName, req.DOB)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SearchEnvelope{SearchResults: results})
}

// HandleSearchByDocket handles POST /ujs/search/docket/.
func (h *Handler) HandleSearchByDocket(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[SearchDocketRequest](w, r, h.logger)
	if !ok {
		return
	}
	results, err := h.service.SearchByDocket(r.Context(), req.DocketNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SearchEnvelope{SearchResults: results})
}
