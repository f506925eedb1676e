package state

import "sync"

// MemoryStore is an in-process marker store.
type MemoryStore struct {
	mu     sync.Mutex
	marker string
}

// NewMemoryStore returns a store holding the given initial marker.
func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{marker: initial}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marker, nil
}

func (s *MemoryStore) Save(marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = marker
	return nil
}
