// Package memory implements ports.StateStore in memory. It is the test
// substitute for the file store; nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/warden/pkg/domain"
)

// Store implements ports.StateStore in memory. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state *domain.State
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Load returns a copy of the held state, or domain.ErrStateNotFound.
func (s *Store) Load(ctx context.Context) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, domain.ErrStateNotFound
	}
	return s.state.Clone(), nil
}

// Save stores a copy so the caller cannot mutate held state afterwards.
func (s *Store) Save(ctx context.Context, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	return nil
}

// Reset replaces any held state with a fresh one at initialMode.
func (s *Store) Reset(ctx context.Context, initialMode string) error {
	return s.Save(ctx, domain.NewState(initialMode))
}
