package handler

import (
	"strings"

	"cleanslate/internal/crecord"
	dErrors "cleanslate/pkg/domain-errors"
)

// AnalyzeRequest is the HTTP request body for POST /analysis/ and
// POST /screening/: a JSON-encoded criminal record.
type AnalyzeRequest struct {
	Person crecord.Person `json:"person"`
	Cases  []crecord.Case `json:"cases"`
}

// Validate validates the request.
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Person.FirstName) == "" && strings.TrimSpace(r.Person.LastName) == "" {
		return dErrors.New(dErrors.CodeValidation, "person name is required")
	}
	for _, c := range r.Cases {
		if strings.TrimSpace(c.DocketNumber) == "" {
			return dErrors.New(dErrors.CodeValidation, "every case needs a docket number")
		}
	}
	return nil
}

// Record converts the request into a domain record.
func (r *AnalyzeRequest) Record() crecord.Record {
	return crecord.Record{Person: r.Person, Cases: r.Cases}
}
