package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cleanslate/internal/auth"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// PostgresStore persists users in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    username      TEXT NOT NULL,
//	    email         TEXT NOT NULL DEFAULT '',
//	    password_hash BYTEA NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE UNIQUE INDEX users_username ON users (LOWER(username));
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, username, email, password_hash, created_at`

func (s *PostgresStore) Create(ctx context.Context, user auth.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(user.ID), user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)
	`, username)
	return scanUser(row)
}

func (s *PostgresStore) GetByID(ctx context.Context, userID id.UserID) (auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, uuid.UUID(userID))
	return scanUser(row)
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (auth.User, error) {
	var user auth.User
	var userID uuid.UUID
	err := row.Scan(&userID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, sentinel.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.ID = id.UserID(userID)
	return user, nil
}
