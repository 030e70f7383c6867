// Package service suggests grades for ungraded charges.
package service

import (
	"context"
	"log/slog"

	"cleanslate/internal/grades"
	"cleanslate/internal/grades/metrics"
	"cleanslate/internal/grades/store"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/requestcontext"
)

// Service answers grade suggestions from the charge record table.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a grades service.
func New(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: st, logger: logger, metrics: m}
}

// SuggestGrade returns a probability for each grade the target charge might
// have. Suggestions are never persisted; they are guesses.
func (s *Service) SuggestGrade(ctx context.Context, target grades.ChargeRecord) (map[string]float64, error) {
	if target.Offense == "" && target.Section == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "an offense or statute section is required")
	}

	matching, err := s.store.ListMatching(ctx, target)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing charge records")
	}

	probabilities := grades.GuessGrade(target, matching)
	outcome := "guessed"
	if len(probabilities) == 0 {
		outcome = "unknown"
	}
	s.metrics.IncrementSuggestions(outcome)

	s.logger.InfoContext(ctx, "grade suggested",
		"request_id", requestcontext.RequestID(ctx),
		"offense", target.Offense,
		"candidates", len(probabilities),
	)
	return probabilities, nil
}

// AddChargeRecord adds one known grading to the table.
func (s *Service) AddChargeRecord(ctx context.Context, record grades.ChargeRecord) (grades.ChargeRecord, error) {
	if record.Offense == "" || record.Grade == "" {
		return grades.ChargeRecord{}, dErrors.New(dErrors.CodeInvalidInput,
			"a charge record needs an offense and a grade")
	}
	created, err := s.store.Create(ctx, record)
	if err != nil {
		return grades.ChargeRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "saving charge record")
	}
	return created, nil
}
