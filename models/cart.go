package models

import "time"

// CartItem is one line of a cart. At most one CartItem per distinct product
// exists within a cart; adding the same product again merges quantities.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
}

// Cart is the per-user staging area of selected products prior to checkout.
// One cart per user, created lazily. Item order carries no meaning.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}
