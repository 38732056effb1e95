// Package seed loads the demo data set: one store, its product catalogue and
// a demo account. Seeding is idempotent; records that already exist are left
// untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/scanmart/scanmart/internal/catalog"
	"github.com/scanmart/scanmart/internal/platform/httpx"
	"github.com/scanmart/scanmart/internal/store"
	"github.com/scanmart/scanmart/internal/user"
)

const demoStoreLayout = `{
  "sections": [
    {"id": "produce", "name": "Produce", "color": "bg-green-100", "position": {"x": 0, "y": 0, "width": 33, "height": 67}},
    {"id": "bakery", "name": "Bakery", "color": "bg-yellow-100", "position": {"x": 33, "y": 0, "width": 33, "height": 67}},
    {"id": "dairy", "name": "Dairy", "color": "bg-blue-100", "position": {"x": 67, "y": 0, "width": 33, "height": 67}},
    {"id": "beverages", "name": "Beverages", "color": "bg-purple-100", "position": {"x": 0, "y": 67, "width": 50, "height": 33}},
    {"id": "snacks", "name": "Snacks", "color": "bg-red-100", "position": {"x": 50, "y": 67, "width": 50, "height": 33}}
  ]
}`

// DemoStore is the store every demo session shops at.
var DemoStore = store.CreateStoreRequest{
	Name:       "GreenMart",
	Branch:     "Downtown Branch",
	QRCode:     "store:1:GreenMart:Downtown",
	LayoutJSON: demoStoreLayout,
}

// DemoProducts is the demo catalogue.
var DemoProducts = []catalog.CreateProductRequest{
	{
		Name:         "Organic Broccoli",
		Description:  "Fresh organic broccoli, locally sourced",
		Price:        2.49,
		PricePerUnit: "$2.49/lb",
		Unit:         "lb",
		Weight:       1.0,
		ImageURL:     "https://images.unsplash.com/photo-1518843875459-f738682238a6?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200",
		Discount:     0,
		Category:     "produce",
		Barcode:      "7896080900021",
	},
	{
		Name:         "Whole Grain Bread",
		Description:  "Freshly baked whole grain bread",
		Price:        3.99,
		PricePerUnit: "$3.99",
		Unit:         "loaf",
		Weight:       0.8,
		ImageURL:     "https://images.unsplash.com/photo-1608198093002-ad4e005484ec?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200",
		Discount:     10,
		Category:     "bakery",
		Barcode:      "7891234567890",
	},
	{
		Name:         "Organic Milk",
		Description:  "Organic whole milk from grass-fed cows",
		Price:        4.29,
		PricePerUnit: "$4.29",
		Unit:         "gallon",
		Weight:       8.6,
		ImageURL:     "https://images.unsplash.com/photo-1563636619-e9143da7973b?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200",
		Discount:     0,
		Category:     "dairy",
		Barcode:      "7893210987654",
	},
	{
		Name:         "Organic Apples",
		Description:  "Fresh organic apples",
		Price:        2.49,
		PricePerUnit: "$2.49/lb",
		Unit:         "lb",
		Weight:       0.4,
		ImageURL:     "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?ixlib=rb-4.0.3&auto=format&fit=crop&w=150&h=150",
		Discount:     15,
		Category:     "produce",
		Barcode:      "7899876543210",
	},
	{
		Name:         "Greek Yogurt",
		Description:  "Plain Greek yogurt, high in protein",
		Price:        4.99,
		PricePerUnit: "$4.99",
		Unit:         "32 oz",
		Weight:       2.0,
		ImageURL:     "https://images.unsplash.com/photo-1556881286-fc6915169721?ixlib=rb-4.0.3&auto=format&fit=crop&w=150&h=150",
		Discount:     0,
		Category:     "dairy",
		Barcode:      "7895432109876",
	},
	{
		Name:         "Organic Bananas",
		Description:  "Organic fair-trade bananas",
		Price:        0.79,
		PricePerUnit: "$0.79/lb",
		Unit:         "lb",
		Weight:       0.8,
		ImageURL:     "https://images.unsplash.com/photo-1575224300306-1b8da36134ec?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=200",
		Discount:     15,
		Category:     "produce",
		Barcode:      "7897890123456",
	},
	{
		Name:         "Strawberries",
		Description:  "Fresh strawberries, locally grown",
		Price:        4.99,
		PricePerUnit: "$4.99",
		Unit:         "16 oz",
		Weight:       1.0,
		ImageURL:     "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?ixlib=rb-4.0.3&auto=format&fit=crop&w=150&h=150",
		Discount:     0,
		Category:     "produce",
		Barcode:      "7895678901234",
	},
	{
		Name:         "Organic Honey",
		Description:  "Raw, unfiltered organic honey",
		Price:        6.49,
		PricePerUnit: "$6.49",
		Unit:         "12 oz",
		Weight:       0.75,
		ImageURL:     "https://images.unsplash.com/photo-1587049352851-8d4e89133924?ixlib=rb-4.0.3&auto=format&fit=crop&w=150&h=150",
		Discount:     0,
		Category:     "grocery",
		Barcode:      "7891212343456",
	},
}

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

// Load populates the repositories with the demo data set.
func Load(ctx context.Context, logger *slog.Logger, stores store.Repository, products catalog.Repository, users *user.Service) error {
	if _, err := stores.StoreByQRCode(ctx, DemoStore.QRCode); errors.Is(err, httpx.ErrNotFound) {
		if _, err := stores.CreateStore(ctx, DemoStore); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		logger.Info("seeded demo store", slog.String("name", DemoStore.Name))
	} else if err != nil {
		return fmt.Errorf("seed store lookup: %w", err)
	}

	seeded := 0
	for _, p := range DemoProducts {
		if _, err := products.ProductByBarcode(ctx, p.Barcode); err == nil {
			continue
		} else if !errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("seed product lookup: %w", err)
		}
		if _, err := products.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		seeded++
	}
	if seeded > 0 {
		logger.Info("seeded demo catalogue", slog.Int("products", seeded))
	}

	if _, err := users.UserByUsername(ctx, demoUsername); errors.Is(err, httpx.ErrNotFound) {
		if _, err := users.CreateUser(ctx, demoUsername, demoPassword); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		logger.Info("seeded demo user", slog.String("username", demoUsername))
	} else if err != nil {
		return fmt.Errorf("seed user lookup: %w", err)
	}

	return nil
}
