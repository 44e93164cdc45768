package session

import (
	"errors"
	"sync"

	"github.com/reagent-ai/reagent/conversation"
)

// Store persists conversation state between runs. The orchestration layer
// hosting the agent decides when state is checkpointed or discarded.
type Store interface {
	// Get returns the state stored under id, or ErrNotFound.
	Get(id string) (*conversation.State, error)

	// Save stores a snapshot of the state under id, replacing any previous one.
	Save(id string, state *conversation.State) error

	// Delete removes the state stored under id. Missing ids are a no-op.
	Delete(id string) error
}

// ErrNotFound is returned by Get for unknown session ids.
var ErrNotFound = errors.New("session not found")

// InMemoryStore is a volatile Store implementation keeping conversations in
// a process-local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo programs. State is cloned on the way in and out so
// callers never alias the stored copy.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*conversation.State
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*conversation.State)}
}

// Get implements Store.
func (s *InMemoryStore) Get(id string) (*conversation.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

// Save implements Store.
func (s *InMemoryStore) Save(id string, state *conversation.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = state.Clone()
	return nil
}

// Delete implements Store.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
