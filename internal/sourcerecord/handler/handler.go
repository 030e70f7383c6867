// Package handler exposes source record upload, fetching, and integration
// over HTTP.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanslate/internal/crecord"
	"cleanslate/internal/sourcerecord"
	"cleanslate/internal/sourcerecord/service"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// maxUploadSize caps one multipart upload at 64 MiB across all files.
const maxUploadSize = 64 << 20

// Service defines the source record operations the handler needs.
type Service interface {
	Upload(ctx context.Context, owner id.UserID, filename string, data []byte) (sourcerecord.SourceRecord, error)
	CreateFromSearch(ctx context.Context, owner id.UserID, selections []service.NewRecord) ([]sourcerecord.SourceRecord, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]sourcerecord.SourceRecord, error)
	Integrate(ctx context.Context, owner id.UserID, rec crecord.Record, recordIDs []id.SourceRecordID) (*service.IntegrationResult, error)
}

// Handler wires source record endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a source record handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts source record endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/sourcerecords/", h.HandleList)
	r.Post("/sourcerecords/upload/", h.HandleUpload)
	r.Post("/sourcerecords/fetch/", h.HandleFetch)
	r.Put("/cases/", h.HandleIntegrate)
}

// HandleList handles GET /sourcerecords/.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}
	records, err := h.service.ListByOwner(r.Context(), owner)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []sourcerecord.SourceRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

// HandleUpload handles POST /sourcerecords/upload/. The body is a multipart
// form; every file part becomes one source record.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid multipart form"))
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "no files uploaded"))
		return
	}

	var records []sourcerecord.SourceRecord
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "reading uploaded file"))
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "reading uploaded file"))
				return
			}
			record, err := h.service.Upload(ctx, owner, header.Filename, data)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			records = append(records, record)
		}
	}
	httputil.WriteJSON(w, http.StatusCreated, records)
}

// HandleFetch handles POST /sourcerecords/fetch/. The body carries UJS search
// results the user selected; records are created and queued for download.
func (h *Handler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[FetchRecordsRequest](w, r, h.logger)
	if !ok {
		return
	}

	selections := make([]service.NewRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		selections = append(selections, service.NewRecord{
			Caption:      rec.Caption,
			DocketNumber: rec.DocketNumber,
			Court:        sourcerecord.Court(rec.Court),
			URL:          rec.URL,
			RecordType:   sourcerecord.RecordType(rec.RecordType),
		})
	}

	records, err := h.service.CreateFromSearch(r.Context(), owner, selections)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, records)
}

// HandleIntegrate handles PUT /cases/: parse the given source records and
// merge what they say into the submitted record.
func (h *Handler) HandleIntegrate(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[IntegrateRequest](w, r, h.logger)
	if !ok {
		return
	}

	recordIDs := make([]id.SourceRecordID, 0, len(req.SourceRecordIDs))
	for _, raw := range req.SourceRecordIDs {
		recordID, err := id.ParseSourceRecordID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		recordIDs = append(recordIDs, recordID)
	}

	result, err := h.service.Integrate(r.Context(), owner, req.Record, recordIDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}
