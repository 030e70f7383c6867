package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// Handler exposes the caller's own activity trail.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the activity endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activity/", h.HandleListActivity)
}

// ActivityResponse wraps the caller's audit events.
type ActivityResponse struct {
	Events []Event `json:"events"`
}

// HandleListActivity handles GET /activity/.
func (h *Handler) HandleListActivity(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	events, err := h.service.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, ActivityResponse{Events: events})
}
