package store

import (
	"context"
	"sort"
	"sync"

	"cleanslate/internal/petition"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// MemoryStore keeps templates in memory for tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[id.TemplateID]petition.DocumentTemplate
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: make(map[id.TemplateID]petition.DocumentTemplate)}
}

func (s *MemoryStore) CreateTemplate(_ context.Context, tmpl petition.DocumentTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[tmpl.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if tmpl.Default {
		for tid, existing := range s.templates {
			if existing.Kind == tmpl.Kind && existing.Default {
				existing.Default = false
				s.templates[tid] = existing
			}
		}
	}
	s.templates[tmpl.ID] = tmpl
	return nil
}

func (s *MemoryStore) GetTemplate(_ context.Context, templateID id.TemplateID) (petition.DocumentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[templateID]
	if !ok {
		return petition.DocumentTemplate{}, sentinel.ErrNotFound
	}
	return tmpl, nil
}

func (s *MemoryStore) ListTemplates(_ context.Context, kind petition.Kind) ([]petition.DocumentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []petition.DocumentTemplate
	for _, tmpl := range s.templates {
		if tmpl.Kind == kind {
			out = append(out, tmpl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Default != out[j].Default {
			return out[i].Default
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) DefaultTemplate(_ context.Context, kind petition.Kind) (petition.DocumentTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tmpl := range s.templates {
		if tmpl.Kind == kind && tmpl.Default {
			return tmpl, nil
		}
	}
	return petition.DocumentTemplate{}, sentinel.ErrNotFound
}
