package services

import (
	"context"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/repository"
)

// CartService manages the per-user staging cart.
type CartService struct {
	carts    repository.CartRepo
	products repository.ProductRepo
}

func NewCartService(carts repository.CartRepo, products repository.ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetOrCreateCart returns the user's cart, lazily creating an empty one. The
// store-level unique constraint on the owning user keeps concurrent callers
// from producing two carts.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required", nil)
	}
	return s.carts.GetOrCreate(ctx, userID)
}

// AddToCart adds quantity units of a product to the cart. When the cart
// already holds a line for the product the quantities merge; a cart never
// carries two lines for the same product. The stored line snapshots the
// product as it is right now. Non-positive quantities are rejected.
func (s *CartService) AddToCart(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be a positive integer", nil)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NotFound("product not found", nil)
	}

	return s.carts.AddItem(ctx, cartID, productID, quantity, product.Snapshot())
}

// UpdateCartItem sets a line's quantity exactly. A quantity of zero or less
// removes the line entirely; that is the documented behavior, not an error.
func (s *CartService) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	return s.carts.UpdateItemQuantity(ctx, itemID, quantity)
}

// RemoveCartItem removes a line. Removing an absent line is a no-op.
func (s *CartService) RemoveCartItem(ctx context.Context, itemID string) error {
	return s.carts.RemoveItem(ctx, itemID)
}

// ClearCart empties the cart's line items.
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	return s.carts.Clear(ctx, cartID)
}
