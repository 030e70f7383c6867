package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cleanslate/internal/sourcerecord"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// PostgresStore persists source records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE source_records (
//	    id           UUID PRIMARY KEY,
//	    caption      TEXT NOT NULL DEFAULT '',
//	    docket_num   TEXT NOT NULL DEFAULT '',
//	    court        TEXT NOT NULL DEFAULT '',
//	    url          TEXT NOT NULL DEFAULT '',
//	    record_type  TEXT NOT NULL DEFAULT '',
//	    fetch_status TEXT NOT NULL,
//	    parse_status TEXT NOT NULL,
//	    file_key     TEXT NOT NULL DEFAULT '',
//	    owner_id     UUID NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE INDEX source_records_owner ON source_records (owner_id, created_at);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const sourceRecordColumns = `id, caption, docket_num, court, url, record_type, fetch_status, parse_status, file_key, owner_id, created_at`

func (s *PostgresStore) Create(ctx context.Context, record sourcerecord.SourceRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_records (`+sourceRecordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(record.ID), record.Caption, record.DocketNumber, string(record.Court),
		record.URL, string(record.RecordType), string(record.FetchStatus),
		string(record.ParseStatus), record.FileKey, uuid.UUID(record.Owner), record.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert source record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, recordID id.SourceRecordID) (sourcerecord.SourceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+sourceRecordColumns+` FROM source_records WHERE id = $1
	`, uuid.UUID(recordID))
	return scanSourceRecord(row)
}

func (s *PostgresStore) Update(ctx context.Context, record sourcerecord.SourceRecord) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE source_records
		SET caption = $2, docket_num = $3, court = $4, url = $5, record_type = $6,
		    fetch_status = $7, parse_status = $8, file_key = $9
		WHERE id = $1
	`,
		uuid.UUID(record.ID), record.Caption, record.DocketNumber, string(record.Court),
		record.URL, string(record.RecordType), string(record.FetchStatus),
		string(record.ParseStatus), record.FileKey,
	)
	if err != nil {
		return fmt.Errorf("update source record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update source record rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.UserID) ([]sourcerecord.SourceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sourceRecordColumns+` FROM source_records
		WHERE owner_id = $1
		ORDER BY created_at
	`, uuid.UUID(owner))
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}
	defer rows.Close()

	var out []sourcerecord.SourceRecord
	for rows.Next() {
		record, err := scanSourceRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type sourceRecordRow interface {
	Scan(dest ...any) error
}

func scanSourceRecord(row sourceRecordRow) (sourcerecord.SourceRecord, error) {
	var record sourcerecord.SourceRecord
	var recordID, owner uuid.UUID
	var court, recordType, fetchStatus, parseStatus string
	err := row.Scan(&recordID, &record.Caption, &record.DocketNumber, &court, &record.URL,
		&recordType, &fetchStatus, &parseStatus, &record.FileKey, &owner, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sourcerecord.SourceRecord{}, sentinel.ErrNotFound
		}
		return sourcerecord.SourceRecord{}, fmt.Errorf("scan source record: %w", err)
	}
	record.ID = id.SourceRecordID(recordID)
	record.Owner = id.UserID(owner)
	record.Court = sourcerecord.Court(court)
	record.RecordType = sourcerecord.RecordType(recordType)
	record.FetchStatus = sourcerecord.FetchStatus(fetchStatus)
	record.ParseStatus = sourcerecord.ParseStatus(parseStatus)
	return record, nil
}

// PostgresFiles stores document bytes in a bytea table, keeping the document
// and its metadata in the same database.
//
// Schema:
//
//	CREATE TABLE source_record_files (
//	    file_key TEXT PRIMARY KEY,
//	    content  BYTEA NOT NULL
//	);
type PostgresFiles struct {
	db *sql.DB
}

func NewPostgresFiles(db *sql.DB) *PostgresFiles {
	return &PostgresFiles{db: db}
}

func (f *PostgresFiles) Save(ctx context.Context, key string, data []byte) error {
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO source_record_files (file_key, content)
		VALUES ($1, $2)
		ON CONFLICT (file_key) DO UPDATE SET content = EXCLUDED.content
	`, key, data)
	if err != nil {
		return fmt.Errorf("save source record file: %w", err)
	}
	return nil
}

func (f *PostgresFiles) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := f.db.QueryRowContext(ctx,
		`SELECT content FROM source_record_files WHERE file_key = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load source record file: %w", err)
	}
	return data, nil
}
