package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "cleanslate/pkg/domain"
)

// PostgresStore persists audit events in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE audit_events (
//	    id         BIGSERIAL PRIMARY KEY,
//	    user_id    UUID NOT NULL,
//	    action     TEXT NOT NULL,
//	    path       TEXT NOT NULL,
//	    detail     TEXT NOT NULL DEFAULT '',
//	    occurred_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX audit_events_user ON audit_events (user_id, occurred_at);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (user_id, action, path, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(event.UserID), event.Action, event.Path, event.Detail, event.Timestamp)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, action, path, detail, occurred_at
		FROM audit_events
		WHERE user_id = $1
		ORDER BY occurred_at, id
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var owner uuid.UUID
		if err := rows.Scan(&owner, &event.Action, &event.Path, &event.Detail, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.UserID = id.UserID(owner)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
