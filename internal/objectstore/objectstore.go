// Package objectstore persists HITL handoff payloads for the durable
// workflow to pick up.
package objectstore

import (
	"context"
	"sync"
)

// Store writes an object and returns the URI the durable workflow should
// load it from.
type Store interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

// MemoryStore is an in-process Store used in tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
	}
}

// Put stores the object under key and returns a mem:// URI.
func (s *MemoryStore) Put(ctx context.Context, key string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(body))
	copy(buf, body)
	s.objects[key] = buf
	return "mem://" + key, nil
}

// Get returns a stored object.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[key]
	return body, ok
}
