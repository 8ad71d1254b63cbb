package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/services"
)

type cartFixture struct {
	carts    *fakeCartRepo
	products *fakeProductRepo
	svc      *services.CartService
	prodSvc  *services.ProductService
}

func newCartFixture() *cartFixture {
	carts := newFakeCartRepo()
	products := newFakeProductRepo()
	return &cartFixture{
		carts:    carts,
		products: products,
		svc:      services.NewCartService(carts, products),
		prodSvc:  services.NewProductService(products),
	}
}

func TestGetOrCreateCart_ReturnsSameCart(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	first, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	second, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Items)
}

func TestAddToCart_MergesQuantities(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", MRP: 500, Price: 400})
	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 2))
	require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 3))

	cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 400.0, cart.Items[0].Product.Price)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)

	err = fx.svc.AddToCart(ctx, cart.ID, "no-such-product", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", Price: 400})
	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 0), apperrors.ErrValidation)
	assert.ErrorIs(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, -2), apperrors.ErrValidation)
}

func TestAddToCart_SnapshotDoesNotTrackLiveProduct(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", MRP: 500, Price: 400})
	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 1))

	mug.Price = 999
	require.NoError(t, fx.prodSvc.UpdateProduct(ctx, mug))

	cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 400.0, cart.Items[0].Product.Price)
}

func TestUpdateCartItem_NonPositiveQuantityRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		fx := newCartFixture()
		ctx := context.Background()

		mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", Price: 400})
		cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
		require.NoError(t, err)
		require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 2))

		cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
		require.NoError(t, err)
		itemID := cart.Items[0].ID

		require.NoError(t, fx.svc.UpdateCartItem(ctx, itemID, quantity))

		cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)

		// Removing what is already gone stays a no-op.
		assert.NoError(t, fx.svc.RemoveCartItem(ctx, itemID))
	}
}

func TestUpdateCartItem_SetsExactQuantity(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", Price: 400})
	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 2))

	cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, fx.svc.UpdateCartItem(ctx, cart.Items[0].ID, 7))

	cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestClearCart(t *testing.T) {
	fx := newCartFixture()
	ctx := context.Background()

	mug := mustAdd(t, fx.prodSvc, services.ProductCreateRequest{Name: "Mug", Price: 400})
	cart, err := fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, fx.svc.AddToCart(ctx, cart.ID, mug.ID, 2))

	require.NoError(t, fx.svc.ClearCart(ctx, cart.ID))

	cart, err = fx.svc.GetOrCreateCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
