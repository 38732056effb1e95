package store

import "context"

// Repository abstracts store persistence.
type Repository interface {
	Store(ctx context.Context, id int64) (*Store, error)
	StoreByQRCode(ctx context.Context, qrCode string) (*Store, error)
	AllStores(ctx context.Context) ([]Store, error)
	CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error)
}
