// Package session tracks one shopper's trip through the store: the scanned
// store, the cart being filled and the checkout verification run. Sessions
// live in memory and are keyed by an opaque id handed to the client.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scanmart/scanmart/internal/cart"
	"github.com/scanmart/scanmart/internal/checkout"
	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/store"
)

// Session is a single shopping trip. Its mutex guards the store, cart and
// checkout run; HTTP handlers and checkout timers touch them concurrently.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	store *store.Details
	cart  *cart.Cart
	seq   *checkout.Sequencer
}

func newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		cart:      cart.New(),
	}
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a fresh session.
func (m *Manager) Create() *Session {
	s := newSession()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, httpx.ErrNotFound)
	}
	return s, nil
}

// Delete removes a session, cancelling any checkout run still in flight.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}
	s.mu.Lock()
	if s.seq != nil {
		s.seq.Cancel()
	}
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
