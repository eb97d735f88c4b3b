package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

// StateStore keeps the session blob in memory, useful for local development
// and tests. State is copied on the way in and out so callers cannot alias
// the stored slices.
type StateStore struct {
	mu    sync.RWMutex
	state *domain.State
}

// NewStateStore constructs an empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load returns a copy of the stored state, or (nil, nil) when nothing has
// been saved.
func (s *StateStore) Load(_ context.Context) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, nil
	}
	copied := copyState(*s.state)
	return &copied, nil
}

// Save overwrites the stored state.
func (s *StateStore) Save(_ context.Context, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := copyState(state)
	s.state = &copied
	return nil
}

// Clear drops the stored state unconditionally.
func (s *StateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

func copyState(state domain.State) domain.State {
	out := state
	out.CartLines = append([]domain.CartLine(nil), state.CartLines...)
	out.Orders = append([]domain.Order(nil), state.Orders...)
	return out
}
