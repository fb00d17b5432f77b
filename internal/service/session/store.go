package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sterling-assoc/supportbot/internal/model/chat"
)

// Store abstracts session persistence so tests can substitute a fake and a
// durable backend can drop in later.
type Store interface {
	Create() chat.Session
	CreateWithID(id string) chat.Session
	Get(id string) (chat.Session, bool)
	Save(s chat.Session)
	Sweep(maxAge time.Duration) int
	Count() int
}

// MemoryStore holds active sessions in a mutex-guarded map. Sessions never
// touch durable storage; a process restart drops every conversation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	now      func() time.Time
}

// NewMemoryStore bootstraps the in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]chat.Session),
		now:      time.Now,
	}
}

// Create provisions a fresh session at the greeting step.
func (s *MemoryStore) Create() chat.Session {
	return s.CreateWithID(uuid.NewString())
}

// CreateWithID provisions a fresh session under the caller's identifier.
// A client holding an id that was swept keeps its conversation key, so its
// next turns find the recreated session instead of missing the store again.
func (s *MemoryStore) CreateWithID(id string) chat.Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now().UTC()
	session := chat.Session{
		ID:           id,
		State:        chat.NewState(),
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get retrieves a session by identifier.
func (s *MemoryStore) Get(id string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Save upserts the session whole. Turns for one session are processed
// serially, so last-write-wins per key is sufficient.
func (s *MemoryStore) Save(session chat.Session) {
	if session.ID == "" {
		return
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

// Sweep removes sessions idle for longer than maxAge and reports how many
// were dropped.
func (s *MemoryStore) Sweep(maxAge time.Duration) int {
	cutoff := s.now().UTC().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count reports the number of active sessions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
