//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/petition"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/testutil/containers"
)

const templateSchema = `
CREATE TABLE document_templates (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    kind        TEXT NOT NULL,
    body        TEXT NOT NULL,
    is_default  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX document_templates_default_per_kind
    ON document_templates (kind) WHERE is_default;
`

func TestPostgresStoreDefaultSwap(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.MustExec(t, templateSchema)

	store := NewPostgres(pg.DB)
	ctx := context.Background()

	first := petition.DocumentTemplate{
		ID:        id.NewTemplateID(),
		Name:      "original",
		Kind:      petition.KindExpungement,
		Body:      "{{.Client.Name}}",
		Default:   true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateTemplate(ctx, first))

	second := first
	second.ID = id.NewTemplateID()
	second.Name = "replacement"
	require.NoError(t, store.CreateTemplate(ctx, second))

	// Creating a new default demotes the old one in the same transaction,
	// so the partial unique index never sees two defaults.
	got, err := store.DefaultTemplate(ctx, petition.KindExpungement)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	old, err := store.GetTemplate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.Default)

	// Duplicate ids surface as the already-used sentinel, not a raw pq error.
	assert.ErrorIs(t, store.CreateTemplate(ctx, second), sentinel.ErrAlreadyUsed)

	_, err = store.DefaultTemplate(ctx, petition.KindSealing)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
