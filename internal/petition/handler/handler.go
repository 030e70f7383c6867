// Package handler exposes petition rendering and template management over
// HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
	"cleanslate/internal/petition/service"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Service defines the petition operations the handler needs.
type Service interface {
	RenderPackage(ctx context.Context, attorney crecord.Attorney, petitions []petition.Petition, selection service.TemplateSelection) (string, []byte, error)
	CreateTemplate(ctx context.Context, name string, kind petition.Kind, body string, isDefault bool) (petition.DocumentTemplate, error)
	ListTemplates(ctx context.Context, kind petition.Kind) ([]petition.DocumentTemplate, error)
	GetTemplate(ctx context.Context, templateID id.TemplateID) (petition.DocumentTemplate, error)
}

// ProfileSource supplies the requesting user's filing defaults. The profile
// feature implements it; tests stub it.
type ProfileSource interface {
	FilingDefaults(ctx context.Context, userID id.UserID) (crecord.Attorney, service.TemplateSelection, error)
}

// Handler wires petition endpoints to the petition service.
type Handler struct {
	service  Service
	profiles ProfileSource
	logger   *slog.Logger
}

// New constructs a petition handler.
func New(svc Service, profiles ProfileSource, logger *slog.Logger) *Handler {
	return &Handler{service: svc, profiles: profiles, logger: logger}
}

// Register mounts petition endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/petitions/", h.HandleRenderPetitions)
	r.Get("/templates/", h.HandleListTemplates)
	r.Post("/templates/", h.HandleCreateTemplate)
	r.Get("/templates/{templateID}", h.HandleGetTemplate)
}

// HandleRenderPetitions handles POST /petitions/. The body carries the
// petitions the analysis proposed (possibly edited by the user); the response
// is a zip of the rendered documents.
func (h *Handler) HandleRenderPetitions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RenderPetitionsRequest](w, r, h.logger)
	if !ok {
		return
	}

	attorney, selection, err := h.profiles.FilingDefaults(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Attorney != nil {
		attorney = *req.Attorney
	}

	name, archive, err := h.service.RenderPackage(ctx, attorney, req.Petitions, selection)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		h.logger.ErrorContext(ctx, "failed to write petition archive",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

// HandleListTemplates handles GET /templates/?kind=Expungement|Sealing.
func (h *Handler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r.URL.Query().Get("kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	templates, err := h.service.ListTemplates(r.Context(), kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if templates == nil {
		templates = []petition.DocumentTemplate{}
	}
	httputil.WriteJSON(w, http.StatusOK, templates)
}

// HandleCreateTemplate handles POST /templates/.
func (h *Handler) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateTemplateRequest](w, r, h.logger)
	if !ok {
		return
	}

	tmpl, err := h.service.CreateTemplate(r.Context(), req.Name, petition.Kind(req.Kind), req.Body, req.Default)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tmpl)
}

// HandleGetTemplate handles GET /templates/{templateID}.
func (h *Handler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := id.ParseTemplateID(chi.URLParam(r, "templateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tmpl, err := h.service.GetTemplate(r.Context(), templateID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tmpl)
}

func parseKind(s string) (petition.Kind, error) {
	switch petition.Kind(s) {
	case petition.KindExpungement, petition.KindSealing:
		return petition.Kind(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "kind must be %s or %s",
		petition.KindExpungement, petition.KindSealing)
}
