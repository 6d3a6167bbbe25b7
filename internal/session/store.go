// Package session holds the per-user conversation state. Each user has at
// most one active session; starting a new flow replaces whatever was there.
package session

import "sync"

// State marks a conversation state. Concrete states are defined by the
// flows that own them; the store only cares about presence.
type State interface {
	SessionState()
}

// Store is an in-memory map of user id to active state. All methods are
// safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]State
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]State)}
}

// Active returns the user's current state, or nil when idle.
func (s *Store) Active(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// Replace installs a new state for the user, discarding any previous one.
// A single operation so a command arriving mid-flow atomically supersedes
// the old flow.
func (s *Store) Replace(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = state
}

// Clear drops the user's session, returning them to idle.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the number of users with an active session.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
