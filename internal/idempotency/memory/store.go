// Package memory provides the in-memory checkout idempotency store used
// when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/shoplite/internal/shop/ports"
)

// Store replays recorded checkout responses by Idempotency-Key. First
// writer wins, matching the postgres-backed store's insert semantics.
type Store struct {
	mu        sync.RWMutex
	responses map[string]ports.StoredResponse
}

func NewStore() *Store {
	return &Store{responses: make(map[string]ports.StoredResponse)}
}

// Get returns the recorded response for key, or nil when the key has not
// been seen.
func (s *Store) Get(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response, ok := s.responses[key]
	if !ok {
		return nil, nil
	}

	// Copy out so callers cannot mutate the stored body through the
	// returned pointer's slice header.
	out := response
	out.Body = append([]byte(nil), response.Body...)
	return &out, nil
}

// Save records the response for key. A key that already holds a response
// keeps its first one.
func (s *Store) Save(_ context.Context, key string, response ports.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.responses[key]; exists {
		return nil
	}

	response.Body = append([]byte(nil), response.Body...)
	s.responses[key] = response
	return nil
}
