// Package correlation maps backend-issued requisition line identifiers to
// client-generated correlation UUIDs. The mapping disambiguates concurrently
// created lines before their backend identifiers are known; tracking-ID
// assignment refuses to proceed without it.
package correlation

import (
	"context"
	"sync"
)

// Store records one UUID per line identifier. Entries have no expiry; writes
// are intended to happen once per line, later writes overwrite.
type Store interface {
	Put(ctx context.Context, lineID, correlationID string) error
	Get(ctx context.Context, lineID string) (string, error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the mapping in process memory. Used in tests and as the
// fallback when Redis is unavailable.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Put records the UUID for a line identifier, overwriting any prior value.
func (s *MemoryStore) Put(ctx context.Context, lineID, correlationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[lineID] = correlationID
	return nil
}

// Get returns the recorded UUID, or the empty string when none exists.
func (s *MemoryStore) Get(ctx context.Context, lineID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[lineID], nil
}

// Clear drops every entry.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	return nil
}
