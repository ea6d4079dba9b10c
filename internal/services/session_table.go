package services

import (
	"sync"

	"schedulebot/internal/domain"
)

// SessionTable owns every live wizard session, keyed by user id. At most one
// session exists per user; a new Put replaces any previous one. Sessions have
// no expiry: an abandoned dialogue stays until its user confirms or cancels.
type SessionTable struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session
}

// NewSessionTable returns an empty session table.
func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[int64]*domain.Session)}
}

// Get returns the live session for userID, if any.
func (t *SessionTable) Get(userID int64) (*domain.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	return s, ok
}

// Put stores s as the live session for its user.
func (t *SessionTable) Put(s *domain.Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[s.UserID] = s
}

// Remove discards the live session for userID, if any.
func (t *SessionTable) Remove(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, userID)
}

// Len reports the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
