// Package handler exposes record analysis over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/analysis"
	"cleanslate/internal/analysis/service"
	"cleanslate/internal/crecord"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Service defines the analysis operations the handler needs.
type Service interface {
	Analyze(ctx context.Context, rec crecord.Record) *analysis.Analysis
	Screen(ctx context.Context, rec crecord.Record) *service.ScreeningResult
}

// Handler wires analysis endpoints to the analysis service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an analysis handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts analysis endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/analysis/", h.HandleAnalyze)
	r.Post("/screening/", h.HandleScreen)
}

// HandleAnalyze handles POST /analysis/. The body is a JSON-encoded
// criminal record; the response explains the expungements and sealings
// that can be generated for it.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger)
	if !ok {
		return
	}

	result := h.service.Analyze(ctx, req.Record())

	h.logger.InfoContext(ctx, "analysis served",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleScreen handles POST /screening/. The body is a JSON-encoded
// criminal record; the response reports eligibility for automated sealing.
func (h *Handler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger)
	if !ok {
		return
	}

	result := h.service.Screen(ctx, req.Record())
	httputil.WriteJSON(w, http.StatusOK, result)
}
