package store

import (
	"context"
	"sync"

	"cleanslate/internal/grades"
)

// MemoryStore keeps charge records in memory for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []grades.ChargeRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(_ context.Context, record grades.ChargeRecord) (grades.ChargeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	if record.Weight <= 0 {
		record.Weight = 1
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *MemoryStore) CreateBatch(ctx context.Context, records []grades.ChargeRecord) error {
	for _, record := range records {
		if _, err := s.Create(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) ListMatching(_ context.Context, target grades.ChargeRecord) ([]grades.ChargeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []grades.ChargeRecord
	for _, record := range s.records {
		if target.Matches(record) {
			out = append(out, record)
		}
	}
	return out, nil
}
