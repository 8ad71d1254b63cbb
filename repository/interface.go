package repository

import (
	"context"
	"time"

	"github.com/horizonstores/backend/models"
)

// The four repository contracts below use plain Go types (no driver types) so
// the two store adapters stay swappable. Lookups that miss return (nil, nil);
// operations that require an existing record return apperrors.ErrNotFound.

// UserRepo manages user accounts. Email is unique; Create returns a conflict
// error on a duplicate.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ProductRepo manages the live catalog.
type ProductRepo interface {
	Create(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	// Search matches query as a case-insensitive substring over name,
	// details and category (OR across the three fields).
	Search(ctx context.Context, query string) ([]models.Product, error)
	// Update replaces the mutable fields of the product with the given id.
	Update(ctx context.Context, product *models.Product) error
	Count(ctx context.Context) (int64, error)
}

// CartRepo manages one cart per user. GetOrCreate must be safe under
// concurrent calls for the same user: the store enforces a unique user id
// constraint so two racing callers converge on a single cart. AddItem must
// merge quantities atomically at the store level, never read-modify-write,
// and returns ErrNotFound when the cart does not exist.
type CartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID string, productID string, quantity int, snapshot models.ProductSnapshot) error
	// UpdateItemQuantity sets the quantity exactly; a quantity <= 0 removes
	// the item. Unknown item ids are a no-op.
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	// RemoveItem is idempotent; removing an absent item is not an error.
	RemoveItem(ctx context.Context, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

// OrderRepo manages immutable order snapshots. CreateWithCartClear persists
// the order and empties the originating cart inside a single transactional
// boundary: either both effects become visible or neither does.
type OrderRepo interface {
	CreateWithCartClear(ctx context.Context, order *models.Order, cartID string) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	// FindByDateRange returns orders created within [start, end], both ends
	// inclusive, newest first.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
	UpdatePayment(ctx context.Context, orderID string, received bool) error
}

// Store bundles the four repositories backed by one physical medium.
type Store struct {
	Users    UserRepo
	Products ProductRepo
	Carts    CartRepo
	Orders   OrderRepo
}
