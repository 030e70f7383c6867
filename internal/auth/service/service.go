// Package service implements account registration and login.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"cleanslate/internal/auth"
	"cleanslate/internal/auth/metrics"
	"cleanslate/internal/auth/store"
	"cleanslate/internal/auth/token"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/requestcontext"
)

// ProfileInitializer creates a user's profile after registration. The profile
// feature implements it.
type ProfileInitializer interface {
	EnsureProfile(ctx context.Context, userID id.UserID) error
}

// Service registers users and issues login tokens.
type Service struct {
	store    store.Store
	tokens   *token.Service
	profiles ProfileInitializer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs an auth service. profiles may be nil when no profile should
// be created on registration.
func New(st store.Store, tokens *token.Service, profiles ProfileInitializer, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: st, tokens: tokens, profiles: profiles, logger: logger, metrics: m}
}

// Register creates an account and its profile.
func (s *Service) Register(ctx context.Context, username, email, password string) (auth.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.metrics.IncrementRegistrations("failed")
		return auth.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "hashing password")
	}

	user := auth.User{
		ID:           id.NewUserID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.metrics.IncrementRegistrations("conflict")
			return auth.User{}, dErrors.Newf(dErrors.CodeConflict, "username %q is taken", username)
		}
		s.metrics.IncrementRegistrations("failed")
		return auth.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "saving user")
	}

	if s.profiles != nil {
		if err := s.profiles.EnsureProfile(ctx, user.ID); err != nil {
			// The account exists; the profile can be created lazily later.
			s.logger.ErrorContext(ctx, "could not create profile for new user",
				"user_id", user.ID, "error", err)
		}
	}

	s.metrics.IncrementRegistrations("ok")
	s.logger.InfoContext(ctx, "user registered",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
	)
	return user, nil
}

// Login checks a password and returns a signed access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, auth.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogins("rejected")
			return "", auth.User{}, dErrors.New(dErrors.CodeUnauthorized, "wrong username or password")
		}
		s.metrics.IncrementLogins("failed")
		return "", auth.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "loading user")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.metrics.IncrementLogins("rejected")
		s.logger.WarnContext(ctx, "login rejected",
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", requestcontext.ClientIP(ctx),
		)
		return "", auth.User{}, dErrors.New(dErrors.CodeUnauthorized, "wrong username or password")
	}

	signed, err := s.tokens.Issue(user.ID, requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncrementLogins("failed")
		return "", auth.User{}, err
	}

	s.metrics.IncrementLogins("ok")
	s.logger.InfoContext(ctx, "user logged in",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
	)
	return signed, user, nil
}

// GetUser loads one account.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (auth.User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return auth.User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return auth.User{}, dErrors.Wrap(err, dErrors.CodeInternal, "loading user")
	}
	return user, nil
}
