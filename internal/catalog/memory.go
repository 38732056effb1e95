package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// MemoryRepository keeps products in process memory. Identifiers are assigned
// from a counter starting at 1 and are never reused; nothing survives restart.
type MemoryRepository struct {
	mu       sync.Mutex
	products map[int64]*Product
	nextID   int64
}

// NewMemoryRepository constructs an empty in-memory product store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products: make(map[int64]*Product),
		nextID:   1,
	}
}

// Product returns the product with the given id.
func (m *MemoryRepository) Product(ctx context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// ProductByBarcode returns the product with the given barcode.
func (m *MemoryRepository) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product barcode %q: %w", barcode, httpx.ErrNotFound)
}

// ProductsByCategory returns all products in a category, ordered by id.
func (m *MemoryRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	sortByID(out)
	return out, nil
}

// AllProducts returns every product, ordered by id.
func (m *MemoryRepository) AllProducts(ctx context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sortByID(out)
	return out, nil
}

// CreateProduct inserts a product and assigns the next id.
func (m *MemoryRepository) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Barcode == req.Barcode {
			return nil, fmt.Errorf("product barcode %q: %w", req.Barcode, httpx.ErrConflict)
		}
	}
	p := &Product{
		ID:           m.nextID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		PricePerUnit: req.PricePerUnit,
		Unit:         req.Unit,
		Weight:       req.Weight,
		ImageURL:     req.ImageURL,
		Discount:     req.Discount,
		Category:     req.Category,
		Barcode:      req.Barcode,
	}
	m.nextID++
	m.products[p.ID] = p
	cp := *p
	return &cp, nil
}

func sortByID(products []Product) {
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
}
