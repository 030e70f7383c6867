//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/auth"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/testutil/containers"
)

const usersSchema = `
CREATE TABLE users (
    id            UUID PRIMARY KEY,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL DEFAULT '',
    password_hash BYTEA NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX users_username ON users (LOWER(username));
`

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.MustExec(t, usersSchema)

	store := NewPostgres(pg.DB)
	ctx := context.Background()

	user := auth.User{
		ID:           id.NewUserID(),
		Username:     "jsmith",
		Email:        "jsmith@example.com",
		PasswordHash: []byte("$2a$10$fakehashfortesting"),
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, store.Create(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("get by username is case-insensitive", func(t *testing.T) {
		got, err := store.GetByUsername(ctx, "JSMITH")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := user
		dup.ID = id.NewUserID()
		dup.Username = "JSmith"
		err := store.Create(ctx, dup)
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("unknown user not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, id.NewUserID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
