// Package store persists petition document templates.
package store

import (
	"context"

	"cleanslate/internal/petition"
	id "cleanslate/pkg/domain"
)

// Store persists document templates. Implementations return sentinel errors
// from pkg/platform/sentinel; services translate them into domain errors.
type Store interface {
	// CreateTemplate saves a new template. Setting Default clears the
	// default flag on the kind's previous default.
	CreateTemplate(ctx context.Context, tmpl petition.DocumentTemplate) error

	// GetTemplate returns a template by id.
	GetTemplate(ctx context.Context, templateID id.TemplateID) (petition.DocumentTemplate, error)

	// ListTemplates returns every template of a kind, defaults first.
	ListTemplates(ctx context.Context, kind petition.Kind) ([]petition.DocumentTemplate, error)

	// DefaultTemplate returns the kind's default template.
	DefaultTemplate(ctx context.Context, kind petition.Kind) (petition.DocumentTemplate, error)
}
