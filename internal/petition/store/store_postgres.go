package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cleanslate/internal/petition"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
	"cleanslate/pkg/platform/tx"
)

// PostgresStore persists document templates in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE document_templates (
//	    id          UUID PRIMARY KEY,
//	    name        TEXT NOT NULL,
//	    kind        TEXT NOT NULL,
//	    body        TEXT NOT NULL,
//	    is_default  BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE UNIQUE INDEX document_templates_default_per_kind
//	    ON document_templates (kind) WHERE is_default;
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateTemplate(ctx context.Context, tmpl petition.DocumentTemplate) error {
	return tx.InTx(ctx, s.db, func(t *sql.Tx) error {
		if tmpl.Default {
			_, err := t.ExecContext(ctx,
				`UPDATE document_templates SET is_default = FALSE WHERE kind = $1 AND is_default`,
				string(tmpl.Kind))
			if err != nil {
				return fmt.Errorf("clear default template: %w", err)
			}
		}

		_, err := t.ExecContext(ctx, `
			INSERT INTO document_templates (id, name, kind, body, is_default, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.UUID(tmpl.ID), tmpl.Name, string(tmpl.Kind), tmpl.Body, tmpl.Default, tmpl.CreatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return sentinel.ErrAlreadyUsed
			}
			return fmt.Errorf("insert template: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) GetTemplate(ctx context.Context, templateID id.TemplateID) (petition.DocumentTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, body, is_default, created_at
		FROM document_templates
		WHERE id = $1
	`, uuid.UUID(templateID))
	return scanTemplate(row)
}

func (s *PostgresStore) ListTemplates(ctx context.Context, kind petition.Kind) ([]petition.DocumentTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, body, is_default, created_at
		FROM document_templates
		WHERE kind = $1
		ORDER BY is_default DESC, name
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []petition.DocumentTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tmpl)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DefaultTemplate(ctx context.Context, kind petition.Kind) (petition.DocumentTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, body, is_default, created_at
		FROM document_templates
		WHERE kind = $1 AND is_default
	`, string(kind))
	return scanTemplate(row)
}

type templateRow interface {
	Scan(dest ...any) error
}

func scanTemplate(row templateRow) (petition.DocumentTemplate, error) {
	var tmpl petition.DocumentTemplate
	var rawID uuid.UUID
	var kind string
	if err := row.Scan(&rawID, &tmpl.Name, &kind, &tmpl.Body, &tmpl.Default, &tmpl.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return petition.DocumentTemplate{}, sentinel.ErrNotFound
		}
		return petition.DocumentTemplate{}, fmt.Errorf("scan template: %w", err)
	}
	tmpl.ID = id.TemplateID(rawID)
	tmpl.Kind = petition.Kind(kind)
	return tmpl, nil
}
