package subscription

import (
	"sync"
)

// Session owns one user's in-memory subscription list. Updates are serialized
// behind the mutex; the remote mirror only ever sees snapshots.
type Session struct {
	mu     sync.Mutex
	userID string
	subs   []Subscription
	seeded bool
}

// NewSession creates an empty session for a user.
func NewSession(userID string) *Session {
	return &Session{userID: userID}
}

// UserID returns the owning user.
func (s *Session) UserID() string {
	return s.userID
}

// Apply merges one record into the list: a record with the same service name
// is replaced, otherwise the record is appended. Last write wins. Returns a
// snapshot of the resulting list.
func (s *Session) Apply(sub Subscription) []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID == "" {
		sub.ID = sub.DocID()
	}

	replaced := false
	for i, existing := range s.subs {
		if existing.Service.Name == sub.Service.Name {
			s.subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		s.subs = append(s.subs, sub)
	}

	return s.snapshotLocked()
}

// Remove deletes a record by ID. Returns the removed record.
func (s *Session) Remove(id string) (Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subs {
		if existing.ID == id {
			removed := existing
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return removed, true
		}
	}
	return Subscription{}, false
}

// Get returns a record by ID.
func (s *Session) Get(id string) (Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subs {
		if existing.ID == id {
			return existing, true
		}
	}
	return Subscription{}, false
}

// UpdateByID overwrites the record with the given ID in place. The
// replacement keeps that ID unless it carries its own, which rekeys the
// record.
func (s *Session) UpdateByID(id string, sub Subscription) ([]Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subs {
		if existing.ID == id {
			if sub.ID == "" {
				sub.ID = id
			}
			s.subs[i] = sub
			return s.snapshotLocked(), true
		}
	}
	return nil, false
}

// Replace swaps the whole list, used when seeding from a remote pull.
func (s *Session) Replace(subs []Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seeded = true
	s.subs = make([]Subscription, len(subs))
	copy(s.subs, subs)
	for i := range s.subs {
		if s.subs[i].ID == "" {
			s.subs[i].ID = s.subs[i].DocID()
		}
	}
}

// Seeded reports whether the session was ever hydrated from the remote store.
func (s *Session) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeded
}

// Snapshot returns a copy of the current list.
func (s *Session) Snapshot() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of records.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Session) snapshotLocked() []Subscription {
	out := make([]Subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

// Manager hands out per-user sessions, creating them on demand.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for a user, creating it if needed.
func (m *Manager) Session(userID string) *Session {
	m.mu.RLock()
	session, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return session
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[userID]; ok {
		return session
	}
	session = NewSession(userID)
	m.sessions[userID] = session
	return session
}

// ActiveUserIDs returns the users with a live session.
func (m *Manager) ActiveUserIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
