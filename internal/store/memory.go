package store

import (
	"context"
	"sync"

	"github.com/mockuniversity/mocku-backend/internal/types"
)

// MemoryStore is the in-process backend. It replaces the old
// module-level map with an injected implementation of RecordStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.Recommendation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]types.Recommendation)}
}

func (s *MemoryStore) Get(_ context.Context, externalID string) (types.Recommendation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[externalID]
	return rec, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, externalID string, rec types.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[externalID] = rec
	return nil
}
