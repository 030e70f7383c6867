// Package service runs records through the standard analysis pipelines.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cleanslate/internal/analysis"
	"cleanslate/internal/analysis/metrics"
	"cleanslate/internal/analysis/ruledefs"
	"cleanslate/internal/crecord"
	"cleanslate/pkg/requestcontext"
)

// Service runs eligibility analyses over criminal records.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// New constructs an analysis service.
func New(logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("cleanslate/analysis"),
	}
}

// Analyze runs the standard petition pipeline over a record: traffic cases
// are set aside, then each expungement and sealing rule takes whatever the
// previous rules left.
func (s *Service) Analyze(ctx context.Context, rec crecord.Record) *analysis.Analysis {
	ctx, span := s.tracer.Start(ctx, "analysis.Analyze",
		trace.WithAttributes(attribute.Int("record.cases", len(rec.Cases))))
	defer span.End()

	start := time.Now()
	asOf := requestcontext.Now(ctx)

	a := analysis.New(rec).
		Rule(ruledefs.FilterTrafficCases()).
		Rule(ruledefs.ExpungeDeceased(asOf)).
		Rule(ruledefs.ExpungeOver70(asOf)).
		Rule(ruledefs.ExpungeNonconvictions()).
		Rule(ruledefs.ExpungeSummaryConvictions(asOf)).
		Rule(ruledefs.SealConvictions(asOf))

	petitions := a.Petitions()
	for _, p := range petitions {
		s.metrics.IncrementPetitionsProposed(string(p.Kind))
	}
	s.metrics.ObserveAnalyzeLatency(time.Since(start))
	s.logger.InfoContext(ctx, "record analyzed",
		"request_id", requestcontext.RequestID(ctx),
		"cases", len(rec.Cases),
		"petitions", len(petitions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return a
}

// ScreeningResult pairs an automated sealing screening with its flattened
// summary.
type ScreeningResult struct {
	Analysis *analysis.Analysis `json:"analysis"`
	Summary  *analysis.Summary  `json:"summary"`
	Errors   []string           `json:"errors,omitempty"`
}

// Screen reports a record's eligibility for automated sealing under Act 56,
// without proposing petitions.
func (s *Service) Screen(ctx context.Context, rec crecord.Record) *ScreeningResult {
	ctx, span := s.tracer.Start(ctx, "analysis.Screen",
		trace.WithAttributes(attribute.Int("record.cases", len(rec.Cases))))
	defer span.End()

	asOf := requestcontext.Now(ctx)
	a := analysis.New(rec).
		Rule(ruledefs.FilterTrafficCases()).
		Rule(ruledefs.AutosealingEligibility(asOf))

	summary, errs := analysis.Summarize(a)
	outcome := "ineligible"
	if summary.ClearableCharges > 0 {
		outcome = "eligible"
	}
	s.metrics.IncrementScreenings(outcome)
	for _, msg := range errs {
		s.logger.WarnContext(ctx, "screening summary issue", "issue", msg)
	}
	s.logger.InfoContext(ctx, "record screened",
		"request_id", requestcontext.RequestID(ctx),
		"cases", len(rec.Cases),
		"clearable_charges", summary.ClearableCharges,
	)
	return &ScreeningResult{Analysis: a, Summary: summary, Errors: errs}
}
