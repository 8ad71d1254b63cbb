package models

import "time"

// Product is a live catalog entry. MRP is the strikethrough list price; Price
// is the charged sale price and is always the one used for order totals.
// Price exceeding MRP is tolerated: the relation only affects discount
// display, not any computation.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	MRP       float64   `json:"mrp"`
	Price     float64   `json:"price"`
	Details   string    `json:"details"`
	Category  string    `json:"category"`
	InStock   bool      `json:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductSnapshot is a frozen projection of a Product, copied by value into
// cart and order line items at the moment of addition. Later edits to the
// live Product never reach a snapshot; order history depends on that.
type ProductSnapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	MRP      float64 `json:"mrp"`
	Price    float64 `json:"price"`
	Details  string  `json:"details"`
	Category string  `json:"category"`
}

// Snapshot returns the frozen projection of p.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		MRP:      p.MRP,
		Price:    p.Price,
		Details:  p.Details,
		Category: p.Category,
	}
}
