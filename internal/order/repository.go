package order

import "context"

// Repository abstracts order persistence. CreateOrder inserts the header and
// all items atomically; no partially created order is ever observable.
type Repository interface {
	Order(ctx context.Context, id int64) (*Order, error)
	OrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	OrdersByUser(ctx context.Context, userID int64) ([]Order, error)
	OrderItems(ctx context.Context, orderID int64) ([]Item, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
}
