package store

import (
	"context"
	"sort"
	"sync"

	"cleanslate/internal/sourcerecord"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// MemoryStore keeps source records in memory for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[id.SourceRecordID]sourcerecord.SourceRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[id.SourceRecordID]sourcerecord.SourceRecord)}
}

func (s *MemoryStore) Create(_ context.Context, record sourcerecord.SourceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, recordID id.SourceRecordID) (sourcerecord.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordID]
	if !ok {
		return sourcerecord.SourceRecord{}, sentinel.ErrNotFound
	}
	return record, nil
}

func (s *MemoryStore) Update(_ context.Context, record sourcerecord.SourceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, owner id.UserID) ([]sourcerecord.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []sourcerecord.SourceRecord
	for _, record := range s.records {
		if record.Owner == owner {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MemoryFiles keeps document bytes in memory.
type MemoryFiles struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{blobs: make(map[string][]byte)}
}

func (f *MemoryFiles) Save(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (f *MemoryFiles) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}
