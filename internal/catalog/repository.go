package catalog

import "context"

// Repository abstracts product storage so the in-memory demo store can be
// swapped for PostgreSQL without touching the service layer.
type Repository interface {
	Product(ctx context.Context, id int64) (*Product, error)
	ProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	AllProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
}
