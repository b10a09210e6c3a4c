package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and by the ephemeral
// storage mode. Break simulates a storage layer that rejects writes
// (quota exceeded, permissions), which lets tests exercise the degraded
// paths.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	broken bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return false
	}
	s.data[key] = value
	return true
}

func (s *MemoryStore) Delete(ctx context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return false
	}
	delete(s.data, key)
	return true
}

func (s *MemoryStore) IsAvailable(ctx context.Context) bool {
	return Probe(ctx, s)
}

// Break toggles write failures on or off.
func (s *MemoryStore) Break(broken bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broken = broken
}

// Reset clears all stored blobs, useful between tests.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	s.broken = false
}
