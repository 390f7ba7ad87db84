package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaheeralics/scriptwriter/internal/metrics"
)

// ErrNotFound is returned for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

// Default caps applied by NewManager when no option overrides them.
const (
	DefaultMaxSessions = 1000
	DefaultIdleTTL     = 24 * time.Hour
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxSessions caps the number of live sessions. Creating a session at
// the cap evicts the least recently used one. 0 disables the cap.
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) { m.maxSessions = n }
}

// WithIdleTTL expires sessions that have not been used for d. 0 disables
// expiry.
func WithIdleTTL(d time.Duration) ManagerOption {
	return func(m *Manager) { m.idleTTL = d }
}

// Manager holds sessions by id and serializes every access to them.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	lastUsed    map[string]time.Time
	limit       int
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

// NewManager creates a Manager whose sessions keep at most historyLimit
// history entries (0 keeps all).
func NewManager(historyLimit int, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		lastUsed:    make(map[string]time.Time),
		limit:       historyLimit,
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session and returns its snapshot.
func (m *Manager) Create() View {
	s := New(uuid.NewString(), m.limit)

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.expire(now)
	if m.maxSessions > 0 {
		for len(m.sessions) >= m.maxSessions {
			m.remove(m.oldest())
		}
	}
	m.sessions[s.ID] = s
	m.lastUsed[s.ID] = now
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return s.Snapshot()
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (View, error) {
	var v View
	err := m.With(id, func(s *Session) error {
		v = s.Snapshot()
		return nil
	})
	return v, err
}

// With runs fn on the session while holding the manager lock. fn must not
// block on I/O.
func (m *Manager) With(id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	now := m.now()
	if m.idle(id, now) {
		m.remove(id)
		metrics.SessionsActive.Set(float64(len(m.sessions)))
		return ErrNotFound
	}
	m.lastUsed[id] = now
	return fn(s)
}

// Delete removes the session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	m.remove(id)
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return nil
}

// Len returns the number of sessions, expired ones included until they are
// next touched or swept by Create.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) idle(id string, now time.Time) bool {
	return m.idleTTL > 0 && now.Sub(m.lastUsed[id]) > m.idleTTL
}

// expire drops every idle session. Callers hold m.mu.
func (m *Manager) expire(now time.Time) {
	if m.idleTTL <= 0 {
		return
	}
	for id := range m.sessions {
		if m.idle(id, now) {
			m.remove(id)
		}
	}
}

// oldest returns the least recently used session id. Callers hold m.mu.
func (m *Manager) oldest() string {
	var id string
	var at time.Time
	for k, t := range m.lastUsed {
		if id == "" || t.Before(at) {
			id, at = k, t
		}
	}
	return id
}

func (m *Manager) remove(id string) {
	delete(m.sessions, id)
	delete(m.lastUsed, id)
}
