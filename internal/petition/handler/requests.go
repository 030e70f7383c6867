package handler

import (
	"strings"

	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
	dErrors "cleanslate/pkg/domain-errors"
)

// RenderPetitionsRequest is the HTTP request body for POST /petitions/.
// The attorney override, when present, replaces the profile's default
// attorney on every petition.
type RenderPetitionsRequest struct {
	Petitions []petition.Petition `json:"petitions"`
	Attorney  *crecord.Attorney   `json:"attorney,omitempty"`
}

// Validate validates the request.
func (r *RenderPetitionsRequest) Validate() error {
	if len(r.Petitions) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one petition is required")
	}
	for _, p := range r.Petitions {
		if p.Kind != petition.KindExpungement && p.Kind != petition.KindSealing {
			return dErrors.Newf(dErrors.CodeValidation, "unknown petition type %q", p.Kind)
		}
		if len(p.Cases) == 0 {
			return dErrors.New(dErrors.CodeValidation, "every petition needs at least one case")
		}
	}
	return nil
}

// CreateTemplateRequest is the HTTP request body for POST /templates/.
type CreateTemplateRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Body    string `json:"body"`
	Default bool   `json:"default"`
}

// Validate validates the request.
func (r *CreateTemplateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "template name is required")
	}
	if _, err := parseKind(r.Kind); err != nil {
		return err
	}
	if strings.TrimSpace(r.Body) == "" {
		return dErrors.New(dErrors.CodeValidation, "template body is required")
	}
	return nil
}
