package order

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// MemoryRepository keeps orders in process memory. A single mutex covers the
// header and item maps, so CreateOrder is atomic by construction.
type MemoryRepository struct {
	mu        sync.Mutex
	orders    map[int64]*Order
	items     map[int64]*Item
	nextOrder int64
	nextItem  int64
}

// NewMemoryRepository constructs an empty in-memory order repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:    make(map[int64]*Order),
		items:     make(map[int64]*Item),
		nextOrder: 1,
		nextItem:  1,
	}
}

// Order returns the order with the given id.
func (m *MemoryRepository) Order(ctx context.Context, id int64) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

// OrderByNumber returns the order with the given order number.
func (m *MemoryRepository) OrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("order %q: %w", orderNumber, httpx.ErrNotFound)
}

// OrdersByUser returns all orders attributed to a user, ordered by id.
func (m *MemoryRepository) OrdersByUser(ctx context.Context, userID int64) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// OrderItems returns the items of an order, ordered by id.
func (m *MemoryRepository) OrderItems(ctx context.Context, orderID int64) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Item
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateOrder inserts the order header and all items under one lock hold.
func (m *MemoryRepository) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == req.OrderNumber {
			return nil, fmt.Errorf("order %q: %w", req.OrderNumber, httpx.ErrConflict)
		}
	}
	o := &Order{
		ID:           m.nextOrder,
		UserID:       req.UserID,
		StoreID:      req.StoreID,
		OrderNumber:  req.OrderNumber,
		TotalAmount:  req.TotalAmount,
		TotalTax:     req.TotalTax,
		TotalSavings: req.TotalSavings,
		TotalWeight:  req.TotalWeight,
		OrderDate:    req.OrderDate,
		Status:       req.Status,
	}
	m.nextOrder++
	m.orders[o.ID] = o
	for _, entry := range req.Items {
		it := &Item{
			ID:        m.nextItem,
			OrderID:   o.ID,
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Price:     entry.Price,
		}
		m.nextItem++
		m.items[it.ID] = it
	}
	cp := *o
	return &cp, nil
}
