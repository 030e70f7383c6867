package handler

import (
	"cleanslate/internal/crecord"
	"cleanslate/internal/sourcerecord"
	dErrors "cleanslate/pkg/domain-errors"
)

// SearchResultRecord is one document a user picked out of UJS search results.
type SearchResultRecord struct {
	Caption      string `json:"caption"`
	DocketNumber string `json:"docket_num"`
	Court        string `json:"court"`
	URL          string `json:"url"`
	RecordType   string `json:"record_type"`
}

// FetchRecordsRequest asks the service to create source records for selected
// search results and download them in the background.
type FetchRecordsRequest struct {
	Records []SearchResultRecord `json:"source_records"`
}

// Validate implements httputil.Validatable.
func (r FetchRecordsRequest) Validate() error {
	if len(r.Records) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no source records given")
	}
	for _, rec := range r.Records {
		if rec.URL == "" {
			return dErrors.New(dErrors.CodeValidation, "every source record needs a url")
		}
		switch sourcerecord.Court(rec.Court) {
		case sourcerecord.CourtCP, sourcerecord.CourtMDJ:
		default:
			return dErrors.Newf(dErrors.CodeValidation, "unknown court %q", rec.Court)
		}
		switch sourcerecord.RecordType(rec.RecordType) {
		case sourcerecord.SummaryPDF, sourcerecord.DocketPDF:
		default:
			return dErrors.Newf(dErrors.CodeValidation, "unknown record type %q", rec.RecordType)
		}
	}
	return nil
}

// IntegrateRequest submits a record plus the source records to merge into it.
type IntegrateRequest struct {
	Record          crecord.Record `json:"record"`
	SourceRecordIDs []string       `json:"source_record_ids"`
}

// Validate implements httputil.Validatable.
func (r IntegrateRequest) Validate() error {
	if len(r.SourceRecordIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no source records given")
	}
	return nil
}
