// Package service renders petitions into documents and manages the stored
// templates they render through.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
	"cleanslate/internal/petition/metrics"
	"cleanslate/internal/petition/store"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/requestcontext"
)

// Service renders petition documents from stored templates.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a petition service.
func New(templates store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: templates, logger: logger, metrics: m}
}

// TemplateSelection lets a caller override the default template per kind,
// typically from the user's profile.
type TemplateSelection struct {
	Expungement id.TemplateID
	Sealing     id.TemplateID
}

// RenderPackage renders each petition through its template and zips the
// documents. The attorney is stamped onto every petition before rendering.
func (s *Service) RenderPackage(ctx context.Context, attorney crecord.Attorney, petitions []petition.Petition, selection TemplateSelection) (string, []byte, error) {
	if len(petitions) == 0 {
		return "", nil, dErrors.New(dErrors.CodeInvalidInput, "no petitions to render")
	}

	start := time.Now()
	date := requestcontext.Now(ctx)

	documents := make([]petition.Document, 0, len(petitions))
	for _, p := range petitions {
		p.Attorney = attorney
		tmpl, err := s.templateFor(ctx, p.Kind, selection)
		if err != nil {
			return "", nil, err
		}
		body, err := petition.Render(tmpl, p, date)
		if err != nil {
			s.metrics.IncrementRenderFailures(string(p.Kind))
			s.logger.ErrorContext(ctx, "petition render failed",
				"request_id", requestcontext.RequestID(ctx),
				"kind", p.Kind,
				"template", tmpl.Name,
				"error", err,
			)
			return "", nil, err
		}
		s.metrics.IncrementRendered(string(p.Kind))
		documents = append(documents, petition.Document{Name: p.FileName(), Body: body})
	}

	archive, err := petition.Package(documents)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "package petitions")
	}

	s.metrics.ObservePackageLatency(time.Since(start))
	s.logger.InfoContext(ctx, "petitions rendered",
		"request_id", requestcontext.RequestID(ctx),
		"documents", len(documents),
		"bytes", len(archive),
	)
	return petition.PackageName(petitions[0].Client), archive, nil
}

func (s *Service) templateFor(ctx context.Context, kind petition.Kind, selection TemplateSelection) (petition.DocumentTemplate, error) {
	templateID := selection.Expungement
	if kind == petition.KindSealing {
		templateID = selection.Sealing
	}

	if !templateID.IsNil() {
		tmpl, err := s.store.GetTemplate(ctx, templateID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return petition.DocumentTemplate{}, dErrors.Newf(dErrors.CodeNotFound, "template %s not found", templateID)
			}
			return petition.DocumentTemplate{}, dErrors.Wrap(err, dErrors.CodeInternal, "load template")
		}
		if tmpl.Kind != kind {
			return petition.DocumentTemplate{}, dErrors.Newf(dErrors.CodeInvalidInput,
				"template %s is a %s template, not %s", templateID, tmpl.Kind, kind)
		}
		return tmpl, nil
	}

	tmpl, err := s.store.DefaultTemplate(ctx, kind)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return petition.DocumentTemplate{}, dErrors.Newf(dErrors.CodeNotFound, "no default %s template", kind)
		}
		return petition.DocumentTemplate{}, dErrors.Wrap(err, dErrors.CodeInternal, "load default template")
	}
	return tmpl, nil
}

// CreateTemplate stores a new document template.
func (s *Service) CreateTemplate(ctx context.Context, name string, kind petition.Kind, body string, isDefault bool) (petition.DocumentTemplate, error) {
	tmpl := petition.DocumentTemplate{
		ID:        id.NewTemplateID(),
		Name:      name,
		Kind:      kind,
		Body:      body,
		Default:   isDefault,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.CreateTemplate(ctx, tmpl); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return petition.DocumentTemplate{}, dErrors.New(dErrors.CodeConflict, "template already exists")
		}
		return petition.DocumentTemplate{}, dErrors.Wrap(err, dErrors.CodeInternal, "create template")
	}
	s.logger.InfoContext(ctx, "template created",
		"request_id", requestcontext.RequestID(ctx),
		"template_id", tmpl.ID,
		"kind", kind,
		"default", isDefault,
	)
	return tmpl, nil
}

// ListTemplates returns the stored templates of a kind, defaults first.
func (s *Service) ListTemplates(ctx context.Context, kind petition.Kind) ([]petition.DocumentTemplate, error) {
	templates, err := s.store.ListTemplates(ctx, kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list templates")
	}
	return templates, nil
}

// GetTemplate returns one stored template.
func (s *Service) GetTemplate(ctx context.Context, templateID id.TemplateID) (petition.DocumentTemplate, error) {
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return petition.DocumentTemplate{}, dErrors.Newf(dErrors.CodeNotFound, "template %s not found", templateID)
		}
		return petition.DocumentTemplate{}, dErrors.Wrap(err, dErrors.CodeInternal, "get template")
	}
	return tmpl, nil
}

// DefaultTemplateIDs returns the id of the default template for each kind,
// seeding the built-in templates first if the store has none. New user
// profiles adopt these ids.
func (s *Service) DefaultTemplateIDs(ctx context.Context) (expungement, sealing id.TemplateID, err error) {
	exp, err := s.ensureDefault(ctx, petition.KindExpungement)
	if err != nil {
		return id.TemplateID{}, id.TemplateID{}, err
	}
	seal, err := s.ensureDefault(ctx, petition.KindSealing)
	if err != nil {
		return id.TemplateID{}, id.TemplateID{}, err
	}
	return exp.ID, seal.ID, nil
}

func (s *Service) ensureDefault(ctx context.Context, kind petition.Kind) (petition.DocumentTemplate, error) {
	tmpl, err := s.store.DefaultTemplate(ctx, kind)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return petition.DocumentTemplate{}, dErrors.Wrap(err, dErrors.CodeInternal, "load default template")
	}

	body := builtinExpungementTemplate
	name := "Built-in expungement petition"
	if kind == petition.KindSealing {
		body = builtinSealingTemplate
		name = "Built-in sealing petition"
	}
	return s.CreateTemplate(ctx, name, kind, body, true)
}
