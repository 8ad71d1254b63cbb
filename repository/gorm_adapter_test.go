package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/repository"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection: an in-memory sqlite database is private per
	// connection, and a single writer is the production shape anyway.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db))
	return repository.NewGormStore(db)
}

func seedUser(t *testing.T, store *repository.Store, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      "Asha",
		Email:     email,
		Mobile:    "9999999999",
		Address:   "12 Hill Road",
		Password:  "secret1",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, store *repository.Store, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		MRP:       price * 1.25,
		Price:     price,
		Category:  "Kitchen",
		InStock:   true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Products.Create(context.Background(), product))
	return product
}

func TestGormUserRepo_UniqueEmail(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := seedUser(t, store, "a@x.com")

	dup := &models.User{ID: uuid.NewString(), Name: "Other", Email: "a@x.com", CreatedAt: time.Now().UTC()}
	err := store.Users.Create(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := store.Users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	missing, err := store.Users.FindByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormProductRepo_SearchAndUpdate(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	mug := seedProduct(t, store, "Ceramic Mug", 400)
	seedProduct(t, store, "Desk Lamp", 1199)

	results, err := store.Products.Search(ctx, "CERAMIC")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, mug.ID, results[0].ID)

	// Category matches too.
	results, err = store.Products.Search(ctx, "kitchen")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	mug.Price = 350
	mug.InStock = false
	require.NoError(t, store.Products.Update(ctx, mug))

	fetched, err := store.Products.FindByID(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, fetched.Price)
	assert.False(t, fetched.InStock)

	err = store.Products.Update(ctx, &models.Product{ID: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGormCartRepo_GetOrCreateIsStable(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "cart@x.com")

	first, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	second, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Items)
}

func TestGormCartRepo_AddItemMerges(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "merge@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	cart, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, store.Carts.AddItem(ctx, cart.ID, mug.ID, 2, mug.Snapshot()))
	require.NoError(t, store.Carts.AddItem(ctx, cart.ID, mug.ID, 3, mug.Snapshot()))

	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 400.0, cart.Items[0].Product.Price)
}

func TestGormCartRepo_AddItemUnknownCart(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "orphan@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	err := store.Carts.AddItem(ctx, "no-such-cart", mug.ID, 1, mug.Snapshot())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// No orphaned line landed anywhere: the user's real cart stays empty.
	cart, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGormCartRepo_ConcurrentAddsAllLand(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "race@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	cart, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)

	const adders = 10
	var wg sync.WaitGroup
	errs := make(chan error, adders)
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Carts.AddItem(ctx, cart.ID, mug.ID, 1, mug.Snapshot())
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, adders, cart.Items[0].Quantity)
}

func TestGormCartRepo_UpdateAndRemove(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "upd@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	cart, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, store.Carts.AddItem(ctx, cart.ID, mug.ID, 2, mug.Snapshot()))

	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	require.NoError(t, store.Carts.UpdateItemQuantity(ctx, itemID, 7))
	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	require.NoError(t, store.Carts.UpdateItemQuantity(ctx, itemID, 0))
	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Idempotent removal of the now-absent item.
	assert.NoError(t, store.Carts.RemoveItem(ctx, itemID))
}

func makeOrder(user *models.User, product *models.Product, quantity int, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:     uuid.NewString(),
		UserID: user.ID,
		User:   user.Snapshot(),
		Items: []models.OrderItem{{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
			Product:   product.Snapshot(),
		}},
		Total:     product.Price * float64(quantity),
		Status:    models.OrderStatusPending,
		CreatedAt: createdAt,
	}
}

func TestGormOrderRepo_CheckoutClearsCart(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "checkout@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	cart, err := store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, store.Carts.AddItem(ctx, cart.ID, mug.ID, 5, mug.Snapshot()))

	order := makeOrder(user, mug, 5, time.Now().UTC())
	require.NoError(t, store.Orders.CreateWithCartClear(ctx, order, cart.ID))

	stored, err := store.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].Quantity)
	assert.Equal(t, 400.0, stored.Items[0].Price)
	assert.Equal(t, user.Email, stored.User.Email)

	cart, err = store.Carts.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGormOrderRepo_SnapshotSurvivesProductEdit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "frozen@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	order := makeOrder(user, mug, 1, time.Now().UTC())
	require.NoError(t, store.Orders.CreateWithCartClear(ctx, order, ""))

	mug.Price = 999
	require.NoError(t, store.Products.Update(ctx, mug))

	stored, err := store.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, stored.Items[0].Price)
	assert.Equal(t, 400.0, stored.Items[0].Product.Price)
}

func TestGormOrderRepo_DateRangeInclusiveNewestFirst(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "range@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	early := makeOrder(user, mug, 1, base.Add(-48*time.Hour))
	atStart := makeOrder(user, mug, 1, base)
	atEnd := makeOrder(user, mug, 1, base.Add(24*time.Hour))
	late := makeOrder(user, mug, 1, base.Add(72*time.Hour))
	for _, o := range []*models.Order{early, atStart, atEnd, late} {
		require.NoError(t, store.Orders.CreateWithCartClear(ctx, o, ""))
	}

	got, err := store.Orders.FindByDateRange(ctx, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, atEnd.ID, got[0].ID)
	assert.Equal(t, atStart.ID, got[1].ID)
}

func TestGormOrderRepo_StatusAndPayment(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "flags@x.com")
	mug := seedProduct(t, store, "Mug", 400)

	order := makeOrder(user, mug, 1, time.Now().UTC())
	require.NoError(t, store.Orders.CreateWithCartClear(ctx, order, ""))

	require.NoError(t, store.Orders.UpdateStatus(ctx, order.ID, models.OrderStatusCompleted))
	require.NoError(t, store.Orders.UpdatePayment(ctx, order.ID, true))

	stored, err := store.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
	assert.True(t, stored.PaymentReceived)

	assert.ErrorIs(t, store.Orders.UpdateStatus(ctx, "ghost", models.OrderStatusPending), apperrors.ErrNotFound)
	assert.ErrorIs(t, store.Orders.UpdatePayment(ctx, "ghost", true), apperrors.ErrNotFound)
}
