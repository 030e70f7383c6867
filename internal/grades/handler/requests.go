package handler

import (
	"github.com/asaskevich/govalidator"

	dErrors "cleanslate/pkg/domain-errors"
)

// SuggestGradeRequest describes the charge whose grade is unknown.
type SuggestGradeRequest struct {
	Offense    string `json:"offense"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
}

// Validate implements httputil.Validatable.
func (r SuggestGradeRequest) Validate() error {
	if r.Offense == "" && r.Section == "" {
		return dErrors.New(dErrors.CodeValidation, "an offense or statute section is required")
	}
	if !govalidator.StringLength(r.Offense, "0", "300") {
		return dErrors.New(dErrors.CodeValidation, "offense is too long")
	}
	return nil
}

// AddChargeRecordRequest adds one known grading to the table.
type AddChargeRecordRequest struct {
	Offense    string `json:"offense"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	Grade      string `json:"grade"`
	Weight     int    `json:"weight"`
}

// Validate implements httputil.Validatable.
func (r AddChargeRecordRequest) Validate() error {
	if !govalidator.StringLength(r.Offense, "1", "300") {
		return dErrors.New(dErrors.CodeValidation, "offense is required")
	}
	if !govalidator.StringLength(r.Grade, "1", "20") {
		return dErrors.New(dErrors.CodeValidation, "grade is required")
	}
	if r.Weight < 0 {
		return dErrors.New(dErrors.CodeValidation, "weight cannot be negative")
	}
	return nil
}
