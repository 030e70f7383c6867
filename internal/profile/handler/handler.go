// Package handler exposes the user profile over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/crecord"
	"cleanslate/internal/profile"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Service defines the profile operations the handler needs.
type Service interface {
	Get(ctx context.Context, userID id.UserID) (profile.UserProfile, error)
	Update(ctx context.Context, p profile.UserProfile) (profile.UserProfile, error)
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/profile/", h.HandleGetProfile)
	r.Put("/profile/", h.HandleUpdateProfile)
}

// HandleGetProfile handles GET /profile/.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// UpdateProfileRequest replaces the user's filing defaults.
type UpdateProfileRequest struct {
	Attorney            crecord.Attorney `json:"attorney"`
	ExpungementTemplate string           `json:"expungement_template,omitempty"`
	SealingTemplate     string           `json:"sealing_template,omitempty"`
}

// Validate implements httputil.Validatable.
func (r UpdateProfileRequest) Validate() error {
	if len(r.Attorney.FullName) > 200 || len(r.Attorney.Organization) > 200 {
		return dErrors.New(dErrors.CodeValidation, "attorney names are limited to 200 characters")
	}
	return nil
}

// HandleUpdateProfile handles PUT /profile/.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger)
	if !ok {
		return
	}

	update := profile.UserProfile{UserID: userID, Attorney: req.Attorney}
	if req.ExpungementTemplate != "" {
		templateID, err := id.ParseTemplateID(req.ExpungementTemplate)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		update.ExpungementTemplate = templateID
	}
	if req.SealingTemplate != "" {
		templateID, err := id.ParseTemplateID(req.SealingTemplate)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		update.SealingTemplate = templateID
	}

	p, err := h.service.Update(r.Context(), update)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}
