package store

import (
	"context"
	"sync"
	"time"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// MemoryStore is a concurrency-safe in-memory interaction counter.
// Counts are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	state zeitgeist.InteractionState
}

// NewMemoryStore creates a MemoryStore whose last reset is now.
func NewMemoryStore(now time.Time) *MemoryStore {
	return &MemoryStore{state: zeitgeist.InteractionState{LastReset: now}}
}

// Record increments the counter for kind and returns the new totals.
func (s *MemoryStore) Record(_ context.Context, kind zeitgeist.InteractionKind) (zeitgeist.InteractionState, error) {
	if !kind.Valid() {
		return zeitgeist.InteractionState{}, zeitgeist.ErrInvalidInteraction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case zeitgeist.InteractionComfort:
		s.state.Comfort++
	case zeitgeist.InteractionAgitate:
		s.state.Agitate++
	}
	return s.state, nil
}

// State returns a copy of the current counters.
func (s *MemoryStore) State(_ context.Context) (zeitgeist.InteractionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

// Reset zeroes both counters and stamps the reset time.
func (s *MemoryStore) Reset(_ context.Context, at time.Time) (zeitgeist.InteractionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = zeitgeist.InteractionState{LastReset: at}
	return s.state, nil
}
