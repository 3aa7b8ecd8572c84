// Package session keeps the per-client state that is never persisted: the
// open cart and the authenticated customer. Each browser session maps to
// one Session; everything else lives in the shared data collection.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/models"
)

// Session is one client's cart and login state.
type Session struct {
	ID string

	mu       sync.Mutex
	cart     *cart.Cart
	user     *models.User
	lastSeen time.Time
}

// WithCart runs fn with exclusive access to the session's cart.
func (s *Session) WithCart(fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

// SetUser marks the session authenticated.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

// ClearUser logs the session out. The cart survives logout.
func (s *Session) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// User returns the authenticated customer, if any.
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Manager tracks active sessions and expires idle ones.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a session manager with the given idle timeout.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{sessions: make(map[string]*Session), ttl: ttl}
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.New().String(),
		cart:     cart.New(),
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(time.Now())
	return s, true
}

// Sweep drops sessions idle longer than the timeout and reports how many.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.expired(now, m.ttl) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on a ticker until the context is cancelled.
func (m *Manager) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
