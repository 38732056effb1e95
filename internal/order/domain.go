// Package order records completed checkouts. Orders and their items are an
// append-only snapshot: item prices are captured at purchase time and never
// follow later catalogue changes.
package order

// Status enumerates the lifecycle states an order can be created with.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is an order header with its captured totals.
type Order struct {
	ID           int64   `json:"id"`
	UserID       *int64  `json:"userId,omitempty"`
	StoreID      int64   `json:"storeId"`
	OrderNumber  string  `json:"orderNumber"`
	TotalAmount  float64 `json:"totalAmount"`
	TotalTax     float64 `json:"totalTax"`
	TotalSavings float64 `json:"totalSavings"`
	TotalWeight  float64 `json:"totalWeight"`
	OrderDate    string  `json:"orderDate"`
	Status       Status  `json:"status"`
}

// Item is one order line, capturing the price at time of purchase.
type Item struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// WithItems is an order header together with its items.
type WithItems struct {
	Order
	Items []Item `json:"items"`
}

// CreateOrderRequest is the POST body for creating an order.
type CreateOrderRequest struct {
	UserID       *int64            `json:"userId,omitempty"`
	StoreID      int64             `json:"storeId" validate:"required,gt=0"`
	OrderNumber  string            `json:"orderNumber" validate:"required,max=50"`
	TotalAmount  float64           `json:"totalAmount" validate:"gte=0"`
	TotalTax     float64           `json:"totalTax" validate:"gte=0"`
	TotalSavings float64           `json:"totalSavings" validate:"gte=0"`
	TotalWeight  float64           `json:"totalWeight" validate:"gte=0"`
	OrderDate    string            `json:"orderDate" validate:"required"`
	Status       Status            `json:"status" validate:"required,oneof=pending completed cancelled"`
	Items        []CreateOrderItem `json:"items" validate:"dive"`
}

// CreateOrderItem is one entry of the order creation payload.
type CreateOrderItem struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}
