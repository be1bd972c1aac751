package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/you/learnsphere/domain"
)

// MemoryStore implements domain.Store in process memory. It is the default
// backend and the one used by tests; values round-trip through JSON so all
// backends share serialization semantics.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Load implements domain.Store.
func (s *MemoryStore) Load(_ context.Context, key string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrRecordNotFound
	}
	return json.Unmarshal(data, v)
}

// Save implements domain.Store.
func (s *MemoryStore) Save(_ context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = data
	s.mu.Unlock()
	return nil
}

// Delete implements domain.Store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

var _ domain.Store = (*MemoryStore)(nil)
