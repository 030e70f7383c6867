// Package store persists user accounts.
package store

import (
	"context"

	"cleanslate/internal/auth"
	id "cleanslate/pkg/domain"
)

// Store persists users. Implementations return sentinel errors from
// pkg/platform/sentinel.
type Store interface {
	Create(ctx context.Context, user auth.User) error
	GetByUsername(ctx context.Context, username string) (auth.User, error)
	GetByID(ctx context.Context, userID id.UserID) (auth.User, error)
}
