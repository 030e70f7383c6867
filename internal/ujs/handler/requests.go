package handler

import (
	"regexp"

	"github.com/asaskevich/govalidator"

	dErrors "cleanslate/pkg/domain-errors"
)

// SearchNameRequest asks for all of a person's dockets.
type SearchNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob,omitempty"`
}

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate implements httputil.Validatable.
func (r SearchNameRequest) Validate() error {
	if !govalidator.StringLength(r.FirstName, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "first_name is required")
	}
	if !govalidator.StringLength(r.LastName, "1", "100") {
		return dErrors.New(dErrors.CodeValidation, "last_name is required")
	}
	if r.DOB != "" && !dobPattern.MatchString(r.DOB) {
		return dErrors.New(dErrors.CodeValidation, "dob must look like 1980-04-15")
	}
	return nil
}

// SearchDocketRequest looks up one docket number.
type SearchDocketRequest struct {
	DocketNumber string `json:"docket_number"`
}

var docketNumberPattern = regexp.MustCompile(`^(CP|MC|MJ)-\d{2,5}-\D{2}-\d+-\d{4}$`)

// Validate implements httputil.Validatable.
func (r SearchDocketRequest) Validate() error {
	if !docketNumberPattern.MatchString(r.DocketNumber) {
		return dErrors.Newf(dErrors.CodeValidation, "%q does not look like a docket number", r.DocketNumber)
	}
	return nil
}
