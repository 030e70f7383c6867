// Package store persists the charge grading records that back grade guesses.
package store

import (
	"context"

	"cleanslate/internal/grades"
)

// Store persists charge records.
type Store interface {
	Create(ctx context.Context, record grades.ChargeRecord) (grades.ChargeRecord, error)
	CreateBatch(ctx context.Context, records []grades.ChargeRecord) error
	ListMatching(ctx context.Context, target grades.ChargeRecord) ([]grades.ChargeRecord, error)
}
