// Package catalog holds the product catalogue: lookups by id, barcode and
// category, plus the recommendation helpers used by the shopping flow.
package catalog

// Product is an item that can be scanned and added to a cart. Products are
// immutable once created; in this system they only come from seed data.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PricePerUnit string  `json:"pricePerUnit,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Weight       float64 `json:"weight"`
	ImageURL     string  `json:"imageUrl"`
	Discount     int     `json:"discount"`
	Category     string  `json:"category"`
	Barcode      string  `json:"barcode"`
}

// CreateProductRequest carries the fields for inserting a product.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	PricePerUnit string  `json:"pricePerUnit,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Weight       float64 `json:"weight" validate:"gte=0"`
	ImageURL     string  `json:"imageUrl" validate:"required"`
	Discount     int     `json:"discount" validate:"gte=0,lte=100"`
	Category     string  `json:"category" validate:"required"`
	Barcode      string  `json:"barcode" validate:"required,max=30"`
}
