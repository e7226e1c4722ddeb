package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. The default store for
// single-process deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.sessions[sessionID] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
