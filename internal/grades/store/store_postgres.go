package store

import (
	"context"
	"database/sql"
	"fmt"

	"cleanslate/internal/grades"
	"cleanslate/pkg/platform/tx"
)

// PostgresStore persists charge records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE charge_records (
//	    id         BIGSERIAL PRIMARY KEY,
//	    offense    TEXT NOT NULL,
//	    title      TEXT NOT NULL DEFAULT '',
//	    section    TEXT NOT NULL DEFAULT '',
//	    subsection TEXT NOT NULL DEFAULT '',
//	    grade      TEXT NOT NULL DEFAULT '',
//	    weight     INTEGER NOT NULL DEFAULT 1
//	);
//	CREATE INDEX charge_records_offense ON charge_records (offense, section, subsection);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, record grades.ChargeRecord) (grades.ChargeRecord, error) {
	if record.Weight <= 0 {
		record.Weight = 1
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO charge_records (offense, title, section, subsection, grade, weight)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, record.Offense, record.Title, record.Section, record.Subsection, record.Grade, record.Weight,
	).Scan(&record.ID)
	if err != nil {
		return grades.ChargeRecord{}, fmt.Errorf("insert charge record: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) CreateBatch(ctx context.Context, records []grades.ChargeRecord) error {
	return tx.InTx(ctx, s.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
			INSERT INTO charge_records (offense, title, section, subsection, grade, weight)
			VALUES ($1, $2, $3, $4, $5, $6)
		`)
		if err != nil {
			return fmt.Errorf("prepare charge record batch: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			weight := record.Weight
			if weight <= 0 {
				weight = 1
			}
			if _, err := stmt.ExecContext(ctx, record.Offense, record.Title, record.Section,
				record.Subsection, record.Grade, weight); err != nil {
				return fmt.Errorf("insert charge record: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) ListMatching(ctx context.Context, target grades.ChargeRecord) ([]grades.ChargeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, offense, title, section, subsection, grade, weight
		FROM charge_records
		WHERE offense = $1 AND section = $2 AND subsection = $3
	`, target.Offense, target.Section, target.Subsection)
	if err != nil {
		return nil, fmt.Errorf("list charge records: %w", err)
	}
	defer rows.Close()

	var out []grades.ChargeRecord
	for rows.Next() {
		var record grades.ChargeRecord
		if err := rows.Scan(&record.ID, &record.Offense, &record.Title, &record.Section,
			&record.Subsection, &record.Grade, &record.Weight); err != nil {
			return nil, fmt.Errorf("scan charge record: %w", err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
