package store

import (
	"context"
	"strings"
	"sync"

	"cleanslate/internal/auth"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// MemoryStore keeps users in memory for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.UserID]auth.User
	byName map[string]id.UserID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[id.UserID]auth.User),
		byName: make(map[string]id.UserID),
	}
}

func (s *MemoryStore) Create(_ context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Username)
	if _, exists := s.byName[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.byID[user.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.byID[user.ID] = user
	s.byName[key] = user.ID
	return nil
}

func (s *MemoryStore) GetByUsername(_ context.Context, username string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return auth.User{}, sentinel.ErrNotFound
	}
	return s.byID[userID], nil
}

func (s *MemoryStore) GetByID(_ context.Context, userID id.UserID) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[userID]
	if !ok {
		return auth.User{}, sentinel.ErrNotFound
	}
	return user, nil
}
