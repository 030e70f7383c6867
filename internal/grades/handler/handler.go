// Package handler exposes grade suggestions over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/grades"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Service defines the grade operations the handler needs.
type Service interface {
	SuggestGrade(ctx context.Context, target grades.ChargeRecord) (map[string]float64, error)
	AddChargeRecord(ctx context.Context, record grades.ChargeRecord) (grades.ChargeRecord, error)
}

// Handler wires grade endpoints to the grades service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a grades handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts grade endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/grades/suggest/", h.HandleSuggestGrade)
	r.Post("/grades/", h.HandleAddChargeRecord)
}

// SuggestGradeResponse carries the probability of each candidate grade.
type SuggestGradeResponse struct {
	Probabilities map[string]float64 `json:"probabilities"`
}

// HandleSuggestGrade handles POST /grades/suggest/. The response maps each
// candidate grade to its probability; an empty map means the charge is not in
// the grading table.
func (h *Handler) HandleSuggestGrade(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[SuggestGradeRequest](w, r, h.logger)
	if !ok {
		return
	}

	probabilities, err := h.service.SuggestGrade(r.Context(), grades.ChargeRecord{
		Offense:    req.Offense,
		Title:      req.Title,
		Section:    req.Section,
		Subsection: req.Subsection,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SuggestGradeResponse{Probabilities: probabilities})
}

// HandleAddChargeRecord handles POST /grades/.
func (h *Handler) HandleAddChargeRecord(w http.ResponseWriter, r *http.Request) {
	if requestcontext.UserID(r.Context()) == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddChargeRecordRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.AddChargeRecord(r.Context(), grades.ChargeRecord{
		Offense:    req.Offense,
		Title:      req.Title,
		Section:    req.Section,
		Subsection: req.Subsection,
		Grade:      req.Grade,
		Weight:     req.Weight,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}
