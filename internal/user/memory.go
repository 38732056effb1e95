package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// MemoryRepository keeps users in process memory, ids assigned from 1.
type MemoryRepository struct {
	mu     sync.Mutex
	users  map[int64]*User
	nextID int64
}

// NewMemoryRepository constructs an empty in-memory user repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int64]*User),
		nextID: 1,
	}
}

// User returns the user with the given id.
func (m *MemoryRepository) User(ctx context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

// UserByUsername returns the user with the given username.
func (m *MemoryRepository) UserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, httpx.ErrNotFound)
}

// CreateUser inserts a user and assigns the next id.
func (m *MemoryRepository) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return nil, fmt.Errorf("user %q: %w", username, httpx.ErrConflict)
		}
	}
	u := &User{ID: m.nextID, Username: username, PasswordHash: passwordHash}
	m.nextID++
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}
