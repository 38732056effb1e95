package order

import (
	"context"
	"fmt"
)

// Service provides order operations.
type Service struct {
	repo Repository
}

// NewService constructs an order service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records an order with its items.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	o, err := s.repo.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// Get retrieves an order together with its items.
func (s *Service) Get(ctx context.Context, id int64) (*WithItems, error) {
	o, err := s.repo.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.OrderItems(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return &WithItems{Order: *o, Items: items}, nil
}

// GetByNumber retrieves an order by its human-readable order number.
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.OrderByNumber(ctx, orderNumber)
}

// ListByUser lists all orders attributed to a user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	orders, err := s.repo.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}
