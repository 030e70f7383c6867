// Package service manages user profiles and serves filing defaults to the
// petition feature.
package service

import (
	"context"
	"errors"
	"log/slog"

	"cleanslate/internal/crecord"
	petitionservice "cleanslate/internal/petition/service"
	"cleanslate/internal/profile"
	"cleanslate/internal/profile/store"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/requestcontext"
)

// TemplateDefaults supplies the default template ids for new profiles. The
// petition service implements it.
type TemplateDefaults interface {
	DefaultTemplateIDs(ctx context.Context) (expungement, sealing id.TemplateID, err error)
}

// Service manages profiles.
type Service struct {
	store     store.Store
	templates TemplateDefaults
	logger    *slog.Logger
}

// New constructs a profile service.
func New(st store.Store, templates TemplateDefaults, logger *slog.Logger) *Service {
	return &Service{store: st, templates: templates, logger: logger}
}

// EnsureProfile creates a profile for the user if one does not exist, adopting
// the default templates. Called on registration and implements the auth
// service's ProfileInitializer.
func (s *Service) EnsureProfile(ctx context.Context, userID id.UserID) error {
	if _, err := s.store.Get(ctx, userID); err == nil {
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "loading profile")
	}

	expungement, sealing, err := s.templates.DefaultTemplateIDs(ctx)
	if err != nil {
		return err
	}
	p := profile.UserProfile{
		UserID:              userID,
		ExpungementTemplate: expungement,
		SealingTemplate:     sealing,
		UpdatedAt:           requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "saving profile")
	}
	s.logger.InfoContext(ctx, "profile created", "user_id", userID)
	return nil
}

// Get returns a user's profile, creating it first if the user predates
// profiles.
func (s *Service) Get(ctx context.Context, userID id.UserID) (profile.UserProfile, error) {
	p, err := s.store.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return profile.UserProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "loading profile")
	}
	if err := s.EnsureProfile(ctx, userID); err != nil {
		return profile.UserProfile{}, err
	}
	p, err = s.store.Get(ctx, userID)
	if err != nil {
		return profile.UserProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "loading profile")
	}
	return p, nil
}

// Update replaces a user's filing defaults.
func (s *Service) Update(ctx context.Context, p profile.UserProfile) (profile.UserProfile, error) {
	current, err := s.Get(ctx, p.UserID)
	if err != nil {
		return profile.UserProfile{}, err
	}

	current.Attorney = p.Attorney
	if !p.ExpungementTemplate.IsNil() {
		current.ExpungementTemplate = p.ExpungementTemplate
	}
	if !p.SealingTemplate.IsNil() {
		current.SealingTemplate = p.SealingTemplate
	}
	current.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, current); err != nil {
		return profile.UserProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "saving profile")
	}
	s.logger.InfoContext(ctx, "profile updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", p.UserID,
	)
	return current, nil
}

// FilingDefaults returns the attorney and template selection for petitions.
// Implements the petition handler's ProfileSource.
func (s *Service) FilingDefaults(ctx context.Context, userID id.UserID) (crecord.Attorney, petitionservice.TemplateSelection, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return crecord.Attorney{}, petitionservice.TemplateSelection{}, err
	}
	selection := petitionservice.TemplateSelection{
		Expungement: p.ExpungementTemplate,
		Sealing:     p.SealingTemplate,
	}
	return p.Attorney, selection, nil
}
