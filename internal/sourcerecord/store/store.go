// Package store persists source records and their document contents.
package store

import (
	"context"

	"cleanslate/internal/sourcerecord"
	id "cleanslate/pkg/domain"
)

// Store persists source record metadata. Implementations return sentinel
// errors from pkg/platform/sentinel.
type Store interface {
	Create(ctx context.Context, record sourcerecord.SourceRecord) error
	Get(ctx context.Context, recordID id.SourceRecordID) (sourcerecord.SourceRecord, error)
	Update(ctx context.Context, record sourcerecord.SourceRecord) error
	ListByOwner(ctx context.Context, owner id.UserID) ([]sourcerecord.SourceRecord, error)
}

// Files persists the document bytes behind source records, keyed by the
// record's file key.
type Files interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}
