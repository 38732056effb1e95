package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// recommendedLimit caps the product lists shown on the store home screen.
const recommendedLimit = 3

// Service provides catalogue lookups for the shopping flow.
type Service struct {
	repo Repository
}

// NewService constructs a catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Product retrieves a product by id.
func (s *Service) Product(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Product(ctx, id)
}

// ProductByBarcode retrieves a product by its barcode.
func (s *Service) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return s.repo.ProductByBarcode(ctx, barcode)
}

// ProductsByCategory lists products in a category.
func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.repo.ProductsByCategory(ctx, category)
}

// AllProducts lists the whole catalogue.
func (s *Service) AllProducts(ctx context.Context) ([]Product, error) {
	return s.repo.AllProducts(ctx)
}

// Recommended returns the products promoted for a store. The demo catalogue
// is not store-specific, so this is simply the first few products.
func (s *Service) Recommended(ctx context.Context, storeID int64) ([]Product, error) {
	products, err := s.repo.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommended products: %w", err)
	}
	if len(products) > recommendedLimit {
		products = products[:recommendedLimit]
	}
	return products, nil
}

// Related returns products sharing a category with the given product,
// excluding the product itself. An unknown product has no relations and
// yields an empty list, not an error.
func (s *Service) Related(ctx context.Context, productID int64) ([]Product, error) {
	product, err := s.repo.Product(ctx, productID)
	if errors.Is(err, httpx.ErrNotFound) {
		return []Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	inCategory, err := s.repo.ProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	related := make([]Product, 0, recommendedLimit)
	for _, p := range inCategory {
		if p.ID == productID {
			continue
		}
		related = append(related, p)
		if len(related) == recommendedLimit {
			break
		}
	}
	return related, nil
}
