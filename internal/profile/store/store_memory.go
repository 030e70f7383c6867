package store

import (
	"context"
	"sync"

	"cleanslate/internal/profile"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// MemoryStore keeps profiles in memory for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.UserID]profile.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[id.UserID]profile.UserProfile)}
}

func (s *MemoryStore) Create(_ context.Context, p profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.UserID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID id.UserID) (profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return profile.UserProfile{}, sentinel.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, p profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[p.UserID]; !exists {
		return sentinel.ErrNotFound
	}
	s.profiles[p.UserID] = p
	return nil
}
