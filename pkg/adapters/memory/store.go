package memory

import (
	"context"
	"sync"

	"github.com/aretw0/enform/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	// Copy on write so the caller can't mutate stored state by reference
	copied := snap.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	// Copy on read as well
	return snap.Clone(), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the known step keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}
