// Package cart implements the shopping cart aggregator. A cart is an ordered
// collection of lines, one per product; every derived total is recomputed
// from the lines on demand and never stored.
package cart

import "github.com/scanmart/scanmart/internal/catalog"

// TaxRate is the flat sales tax applied to the cart subtotal.
const TaxRate = 0.055

// Line pairs a product with a quantity. A cart holds at most one line per
// product id.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Totals are the derived values of a cart.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Savings  float64 `json:"savings"`
	Weight   float64 `json:"weight"`
	Total    float64 `json:"total"`
}

// Cart is owned by a single shopping session and mutated by one caller at a
// time; it does no locking of its own.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine adds quantity of the product to the cart. If a line for the product
// already exists its quantity is incremented instead of a second line being
// created. A quantity below 1 is a no-op.
func (c *Cart) AddLine(product catalog.Product, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
}

// RemoveLine deletes the line for the product. Removing an absent product is
// not an error.
func (c *Cart) RemoveLine(productID int64) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the quantity of the product's line. A quantity of
// zero or less removes the line.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart, e.g. after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Totals recomputes the derived values from the current lines.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, line := range c.lines {
		qty := float64(line.Quantity)
		t.Subtotal += line.Product.Price * qty
		t.Weight += line.Product.Weight * qty
		t.Savings += float64(line.Product.Discount) / 100 * line.Product.Price * qty
	}
	t.Tax = t.Subtotal * TaxRate
	t.Total = t.Subtotal + t.Tax - t.Savings
	return t
}
