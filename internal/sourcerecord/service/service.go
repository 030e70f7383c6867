// Package service manages source records: uploading documents, queueing
// downloads from the UJS portal, and integrating parsed documents into a
// criminal record.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cleanslate/internal/crecord"
	"cleanslate/internal/sourcerecord"
	"cleanslate/internal/sourcerecord/metrics"
	"cleanslate/internal/sourcerecord/parser"
	"cleanslate/internal/sourcerecord/store"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/requestcontext"
)

// Downloader fetches one document by url.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// FetchQueue enqueues background downloads for source records.
type FetchQueue interface {
	EnqueueFetch(ctx context.Context, recordID id.SourceRecordID) error
}

// Service coordinates source record storage, fetching, and parsing.
type Service struct {
	store      store.Store
	files      store.Files
	downloader Downloader
	queue      FetchQueue
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// New constructs a source record service.
func New(st store.Store, files store.Files, downloader Downloader, queue FetchQueue, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:      st,
		files:      files,
		downloader: downloader,
		queue:      queue,
		logger:     logger,
		metrics:    m,
		tracer:     otel.Tracer("cleanslate/sourcerecord"),
	}
}

// Upload stores a document a user uploaded themselves. The filename decides
// the record type and court; a name that tells us nothing is rejected.
func (s *Service) Upload(ctx context.Context, owner id.UserID, filename string, data []byte) (sourcerecord.SourceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "sourcerecord.Upload")
	defer span.End()

	info, ok := sourcerecord.ClassifyFilename(filename)
	if !ok {
		return sourcerecord.SourceRecord{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"cannot tell what kind of document %q is", filename)
	}
	if len(data) == 0 {
		return sourcerecord.SourceRecord{}, dErrors.New(dErrors.CodeInvalidInput, "uploaded file is empty")
	}

	record := sourcerecord.SourceRecord{
		ID:          id.NewSourceRecordID(),
		Caption:     filename,
		Court:       info.Court,
		RecordType:  info.RecordType,
		FetchStatus: sourcerecord.Fetched,
		ParseStatus: sourcerecord.ParseUnknown,
		Owner:       owner,
		CreatedAt:   requestcontext.Now(ctx),
	}
	record.FileKey = fileKey(record.ID)

	if err := s.files.Save(ctx, record.FileKey, data); err != nil {
		return sourcerecord.SourceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "saving uploaded document")
	}
	if err := s.store.Create(ctx, record); err != nil {
		return sourcerecord.SourceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "saving source record")
	}

	s.logger.InfoContext(ctx, "source record uploaded",
		"request_id", requestcontext.RequestID(ctx),
		"source_record_id", record.ID,
		"record_type", record.RecordType,
	)
	return record, nil
}

// NewRecord describes one document selected from UJS search results.
type NewRecord struct {
	Caption      string
	DocketNumber string
	Court        sourcerecord.Court
	URL          string
	RecordType   sourcerecord.RecordType
}

// CreateFromSearch creates source records for documents a user picked out of
// UJS search results and queues each one for download. Records whose fetch
// job could not be enqueued are still created, left NOT_FETCHED for retry.
func (s *Service) CreateFromSearch(ctx context.Context, owner id.UserID, selections []NewRecord) ([]sourcerecord.SourceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "sourcerecord.CreateFromSearch",
		trace.WithAttributes(attribute.Int("selections", len(selections))))
	defer span.End()

	if len(selections) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "no documents selected")
	}

	records := make([]sourcerecord.SourceRecord, 0, len(selections))
	for _, sel := range selections {
		record := sourcerecord.SourceRecord{
			ID:           id.NewSourceRecordID(),
			Caption:      sel.Caption,
			DocketNumber: sel.DocketNumber,
			Court:        sel.Court,
			URL:          sel.URL,
			RecordType:   sel.RecordType,
			FetchStatus:  sourcerecord.NotFetched,
			ParseStatus:  sourcerecord.ParseUnknown,
			Owner:        owner,
			CreatedAt:    requestcontext.Now(ctx),
		}
		record.FileKey = fileKey(record.ID)
		if err := s.store.Create(ctx, record); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "saving source record")
		}
		if err := s.queue.EnqueueFetch(ctx, record.ID); err != nil {
			s.logger.ErrorContext(ctx, "could not enqueue fetch job",
				"source_record_id", record.ID, "error", err)
		}
		records = append(records, record)
	}

	s.logger.InfoContext(ctx, "source records created from search",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(records),
	)
	return records, nil
}

// ProcessFetch downloads the document behind one source record. It is called
// by the fetch queue worker. The record moves FETCHING -> FETCHED, or
// FETCH_FAILED when the download does not work out.
func (s *Service) ProcessFetch(ctx context.Context, recordID id.SourceRecordID) error {
	ctx, span := s.tracer.Start(ctx, "sourcerecord.ProcessFetch",
		trace.WithAttributes(attribute.String("source_record_id", recordID.String())))
	defer span.End()

	record, err := s.store.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "source record not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "loading source record")
	}
	if record.FetchStatus == sourcerecord.Fetched {
		return nil
	}
	if record.URL == "" {
		return s.markFetchFailed(ctx, record,
			dErrors.New(dErrors.CodeInvalidInput, "source record has no url"))
	}

	record.FetchStatus = sourcerecord.Fetching
	if err := s.store.Update(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "updating source record")
	}

	start := time.Now()
	data, err := s.downloader.Download(ctx, record.URL)
	s.metrics.ObserveDownloadLatency(time.Since(start))
	if err != nil {
		s.metrics.IncrementDownloads("failed")
		return s.markFetchFailed(ctx, record, err)
	}
	s.metrics.IncrementDownloads("ok")

	if err := s.files.Save(ctx, record.FileKey, data); err != nil {
		return s.markFetchFailed(ctx, record,
			dErrors.Wrap(err, dErrors.CodeInternal, "saving downloaded document"))
	}

	record.FetchStatus = sourcerecord.Fetched
	if err := s.store.Update(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "updating source record")
	}
	s.logger.InfoContext(ctx, "source record fetched",
		"source_record_id", record.ID,
		"bytes", len(data),
	)
	return nil
}

func (s *Service) markFetchFailed(ctx context.Context, record sourcerecord.SourceRecord, cause error) error {
	record.FetchStatus = sourcerecord.FetchFailed
	if err := s.store.Update(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "could not mark source record failed",
			"source_record_id", record.ID, "error", err)
	}
	return cause
}

// Get returns one source record, owner-checked.
func (s *Service) Get(ctx context.Context, owner id.UserID, recordID id.SourceRecordID) (sourcerecord.SourceRecord, error) {
	record, err := s.store.Get(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return sourcerecord.SourceRecord{}, dErrors.Wrap(err, dErrors.CodeNotFound, "source record not found")
		}
		return sourcerecord.SourceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "loading source record")
	}
	if record.Owner != owner {
		return sourcerecord.SourceRecord{}, dErrors.New(dErrors.CodeNotFound, "source record not found")
	}
	return record, nil
}

// ListByOwner returns a user's source records, oldest first.
func (s *Service) ListByOwner(ctx context.Context, owner id.UserID) ([]sourcerecord.SourceRecord, error) {
	records, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing source records")
	}
	return records, nil
}

// IntegrationResult is a record updated with parsed documents, plus any
// per-document problems that didn't stop the rest.
type IntegrationResult struct {
	Record crecord.Record `json:"record"`
	Errors []string       `json:"errors,omitempty"`
}

// Integrate parses the documents behind the given source records and merges
// what they say into the record. Docket sheets contribute cases and person
// details; a parse failure marks that one record PARSE_FAILED and moves on.
func (s *Service) Integrate(ctx context.Context, owner id.UserID, rec crecord.Record, recordIDs []id.SourceRecordID) (*IntegrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "sourcerecord.Integrate",
		trace.WithAttributes(attribute.Int("documents", len(recordIDs))))
	defer span.End()

	result := &IntegrationResult{Record: rec.Copy()}
	for _, recordID := range recordIDs {
		record, err := s.Get(ctx, owner, recordID)
		if err != nil {
			return nil, err
		}
		if record.FetchStatus != sourcerecord.Fetched {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s has not been fetched yet", record.Caption))
			continue
		}
		if record.RecordType != sourcerecord.DocketPDF {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s is not a docket sheet; only docket sheets are parsed", record.Caption))
			continue
		}

		data, err := s.files.Load(ctx, record.FileKey)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "loading document")
		}

		person, cases, parseErrs := parser.ParseCPDocketText(string(data))
		if !anyParsed(cases) {
			s.metrics.IncrementParses("failed")
			record.ParseStatus = sourcerecord.ParseFailed
			if err := s.store.Update(ctx, record); err != nil {
				s.logger.ErrorContext(ctx, "could not record parse failure",
					"source_record_id", record.ID, "error", err)
			}
			result.Errors = append(result.Errors,
				fmt.Sprintf("could not parse %s", record.Caption))
			result.Errors = append(result.Errors, parseErrs...)
			continue
		}
		s.metrics.IncrementParses("ok")

		mergePerson(&result.Record.Person, person)
		for _, c := range cases {
			if c.DocketNumber == "" && len(c.Charges) == 0 {
				continue
			}
			result.Record.AddCase(c)
		}
		result.Errors = append(result.Errors, parseErrs...)

		record.ParseStatus = sourcerecord.ParseSuccess
		if err := s.store.Update(ctx, record); err != nil {
			s.logger.ErrorContext(ctx, "could not record parse success",
				"source_record_id", record.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "source records integrated",
		"request_id", requestcontext.RequestID(ctx),
		"documents", len(recordIDs),
		"cases", len(result.Record.Cases),
		"issues", len(result.Errors),
	)
	return result, nil
}

// mergePerson fills in what a docket sheet knows about the person. Parsed
// values win over what the caller sent, except where the sheet is silent.
func mergePerson(dst *crecord.Person, parsed crecord.Person) {
	if parsed.FirstName != "" {
		dst.FirstName = parsed.FirstName
	}
	if parsed.LastName != "" {
		dst.LastName = parsed.LastName
	}
	if !parsed.DateOfBirth.IsZero() {
		dst.DateOfBirth = parsed.DateOfBirth
	}
	if parsed.Address != nil {
		dst.Address = parsed.Address
	}
	for _, alias := range parsed.Aliases {
		if !containsString(dst.Aliases, alias) {
			dst.Aliases = append(dst.Aliases, alias)
		}
	}
}

// anyParsed reports whether parsing produced at least one usable case: one we
// can identify by docket number or that carries charges.
func anyParsed(cases []crecord.Case) bool {
	for _, c := range cases {
		if c.DocketNumber != "" || len(c.Charges) > 0 {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func fileKey(recordID id.SourceRecordID) string {
	return "sourcerecords/" + recordID.String() + ".pdf"
}
