// Package store models retail locations: identity, branch, the QR scan code
// printed at the entrance, and the floor layout used for map rendering.
package store

// Store is a retail location as persisted. The layout is kept as JSON text
// and only parsed when a store is served to a client.
type Store struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Branch     string `json:"branch"`
	QRCode     string `json:"qrCode"`
	LayoutJSON string `json:"-"`
}

// Details is the wire representation of a store with its layout parsed.
type Details struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Branch string `json:"branch"`
	QRCode string `json:"qrCode"`
	Layout Layout `json:"layout"`
}

// Layout describes the floor plan of a store.
type Layout struct {
	Sections []Section `json:"sections"`
}

// Section is a named area of the floor plan with a display color and a
// bounding box in percent of the map canvas.
type Section struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position Rect   `json:"position"`
}

// Rect is a bounding box in layout coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CreateStoreRequest carries the fields for inserting a store.
type CreateStoreRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Branch     string `json:"branch" validate:"required,max=200"`
	QRCode     string `json:"qrCode" validate:"required"`
	LayoutJSON string `json:"layout" validate:"required,json"`
}
