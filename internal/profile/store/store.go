// Package store persists user profiles.
package store

import (
	"context"

	"cleanslate/internal/profile"
	id "cleanslate/pkg/domain"
)

// Store persists profiles. Implementations return sentinel errors from
// pkg/platform/sentinel.
type Store interface {
	Create(ctx context.Context, p profile.UserProfile) error
	Get(ctx context.Context, userID id.UserID) (profile.UserProfile, error)
	Update(ctx context.Context, p profile.UserProfile) error
}
