package audit

import (
	"context"

	id "cleanslate/pkg/domain"
	"cleanslate/pkg/requestcontext"
)

// Service captures structured audit events. It is append-only and uses the
// store for persistence so tests can swap sinks easily.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	return s.store.Append(ctx, event)
}

func (s *Service) List(ctx context.Context, userID id.UserID) ([]Event, error) {
	return s.store.ListByUser(ctx, userID)
}
