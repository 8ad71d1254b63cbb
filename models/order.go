package models

import "time"

// Order status values. The two fields Status and PaymentReceived move
// independently; any transition is permitted in either dimension and a
// completed order may be reopened.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// ValidOrderStatus reports whether s is one of the two known status values.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted
}

// OrderItem is one frozen line of an order. Price is the unit sale price at
// order time and never changes afterwards.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   ProductSnapshot `json:"product"`
}

// Order is the immutable record of a completed checkout. Only Status and
// PaymentReceived may change after creation.
type Order struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	User            UserSnapshot `json:"user"`
	Items           []OrderItem  `json:"items"`
	Total           float64      `json:"total"`
	Status          string       `json:"status"`
	PaymentReceived bool         `json:"payment_received"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ReportData aggregates orders over a closed date interval for the admin
// reporting screen.
type ReportData struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TotalOrders  int       `json:"total_orders"`
	TotalRevenue float64   `json:"total_revenue"`
	Orders       []Order   `json:"orders"`
}
