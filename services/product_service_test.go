package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/services"
)

func TestAddProduct_RoundTrip(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())

	created, err := svc.AddProduct(context.Background(), services.ProductCreateRequest{
		Name:     "Mug",
		ImageURL: "/images/mug.jpg",
		MRP:      500,
		Price:    400,
		Details:  "Stoneware",
		Category: "Kitchen",
		InStock:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := svc.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Mug", fetched.Name)
	assert.Equal(t, 500.0, fetched.MRP)
	assert.Equal(t, 400.0, fetched.Price)
	assert.Equal(t, "Kitchen", fetched.Category)
	assert.True(t, fetched.InStock)
}

func TestAddProduct_RequiresName(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())

	_, err := svc.AddProduct(context.Background(), services.ProductCreateRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddProduct_ToleratesPriceAboveMRP(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())

	created, err := svc.AddProduct(context.Background(), services.ProductCreateRequest{
		Name: "Oddly Priced", MRP: 100, Price: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, created.Price)
}

func TestGetProductByID_MissingIsNotAnError(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())

	product, err := svc.GetProductByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestSearchProducts_CaseInsensitiveAcrossFields(t *testing.T) {
	repo := newFakeProductRepo()
	svc := services.NewProductService(repo)
	ctx := context.Background()

	mustAdd(t, svc, services.ProductCreateRequest{Name: "Ceramic Mug", Category: "Kitchen"})
	mustAdd(t, svc, services.ProductCreateRequest{Name: "Tote Bag", Details: "kitchen towel included"})
	mustAdd(t, svc, services.ProductCreateRequest{Name: "Desk Lamp", Category: "Home"})

	results, err := svc.SearchProducts(ctx, "KITCHEN")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchProducts_BlankQueryReturnsEverything(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())
	ctx := context.Background()

	mustAdd(t, svc, services.ProductCreateRequest{Name: "A"})
	mustAdd(t, svc, services.ProductCreateRequest{Name: "B"})

	results, err := svc.SearchProducts(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestUpdateProduct_MissingIsNotFound(t *testing.T) {
	svc := services.NewProductService(newFakeProductRepo())

	err := svc.UpdateProduct(context.Background(), &models.Product{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	repo := newFakeProductRepo()
	svc := services.NewProductService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SeedCatalog(ctx))
	first, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, first, int64(0))

	require.NoError(t, svc.SeedCatalog(ctx))
	second, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func mustAdd(t *testing.T, svc *services.ProductService, req services.ProductCreateRequest) *models.Product {
	t.Helper()
	p, err := svc.AddProduct(context.Background(), req)
	require.NoError(t, err)
	return p
}
