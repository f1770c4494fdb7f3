package rivals

import (
	"context"
	"sync"
)

// MemoryStore keeps the rival set in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	rivals []string
}

// NewMemoryStore starts with the normalized initial set.
func NewMemoryStore(initial ...string) *MemoryStore {
	return &MemoryStore{rivals: Normalize(initial)}
}

// Load returns a copy of the set.
func (m *MemoryStore) Load(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.rivals...), nil
}

// Save replaces the set.
func (m *MemoryStore) Save(_ context.Context, rivals []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rivals = Normalize(rivals)
	return nil
}
