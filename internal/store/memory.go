package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// MemoryRepository keeps stores in process memory, ids assigned from 1.
type MemoryRepository struct {
	mu     sync.Mutex
	stores map[int64]*Store
	nextID int64
}

// NewMemoryRepository constructs an empty in-memory store repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		stores: make(map[int64]*Store),
		nextID: 1,
	}
}

// Store returns the store with the given id.
func (m *MemoryRepository) Store(ctx context.Context, id int64) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok {
		return nil, fmt.Errorf("store %d: %w", id, httpx.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

// StoreByQRCode returns the store with the given scan code.
func (m *MemoryRepository) StoreByQRCode(ctx context.Context, qrCode string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stores {
		if s.QRCode == qrCode {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("store qr %q: %w", qrCode, httpx.ErrNotFound)
}

// AllStores returns every store, ordered by id.
func (m *MemoryRepository) AllStores(ctx context.Context) ([]Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateStore inserts a store and assigns the next id.
func (m *MemoryRepository) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.stores {
		if s.QRCode == req.QRCode {
			return nil, fmt.Errorf("store qr %q: %w", req.QRCode, httpx.ErrConflict)
		}
	}
	s := &Store{
		ID:         m.nextID,
		Name:       req.Name,
		Branch:     req.Branch,
		QRCode:     req.QRCode,
		LayoutJSON: req.LayoutJSON,
	}
	m.nextID++
	m.stores[s.ID] = s
	cp := *s
	return &cp, nil
}
