// Package session holds the per-user conversation transcript used as LLM
// context. State lives only in this process: it is created lazily on first
// use and destroyed by an explicit reset or a restart.
package session

import (
	"sync"

	"github.com/luiscast/ventasbot/internal/domain"
)

// Store maps a Telegram user id to a bounded ordered transcript. Concurrent
// messages from the same user race last-write-wins on the append sequence;
// each Append runs append and truncation under one lock hold, so truncation
// can never lose turns mid-flight.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64][]domain.Turn
	maxTurns int
}

func NewStore(maxTurns int) *Store {
	return &Store{
		sessions: make(map[int64][]domain.Turn),
		maxTurns: maxTurns,
	}
}

// Get returns a copy of the user's transcript, oldest first. An unknown user
// yields an empty transcript, not an error.
func (s *Store) Get(userID int64) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[userID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out
}

// Append adds turns to the user's transcript and drops the oldest entries
// once the cap is exceeded, keeping the most recent continuous window.
func (s *Store) Append(userID int64, turns ...domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := append(s.sessions[userID], turns...)
	if len(updated) > s.maxTurns {
		updated = updated[len(updated)-s.maxTurns:]
	}
	s.sessions[userID] = updated
}

// Reset clears the user's transcript.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the current transcript length for a user.
func (s *Store) Len(userID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[userID])
}
