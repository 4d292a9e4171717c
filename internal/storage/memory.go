package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrPutFailed is returned by a MemoryKV configured with FailPuts.
var ErrPutFailed = errors.New("storage: put failed")

// Ensure MemoryKV implements KV.
var _ KV = (*MemoryKV)(nil)

// MemoryKV is an in-memory KV used in tests. It survives store
// re-creation (but not process restart), which makes it suitable for
// simulating rehydration.
type MemoryKV struct {
	mu       sync.RWMutex
	data     map[string][]byte
	failPuts bool
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// FailPuts makes every subsequent Put return an error. Used to test
// persist-failure handling.
func (m *MemoryKV) FailPuts(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPuts = fail
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a copy of value under key.
func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPuts {
		return ErrPutFailed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }
