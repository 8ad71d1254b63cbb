package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/horizonstores/backend/common/logger"
	"github.com/horizonstores/backend/controllers"
	"github.com/horizonstores/backend/database"
	"github.com/horizonstores/backend/repository"
	"github.com/horizonstores/backend/routes"
	"github.com/horizonstores/backend/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to open store", zap.Error(err))
	}

	productSvc := services.NewProductService(store.Products)
	userSvc := services.NewUserService(store.Users)
	cartSvc := services.NewCartService(store.Carts, store.Products)

	var idem services.IdempotencyStore
	if cfg.RedisAddr != "" {
		idem = database.NewCheckoutIdempotencyStore(cfg.RedisAddr)
	}
	orderSvc := services.NewOrderService(store.Users, store.Carts, store.Orders, idem)

	// Bootstrap is idempotent and runs on every start.
	if err := userSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPass); err != nil {
		logger.Log.Fatal("Failed to seed administrator", zap.Error(err))
	}
	if err := productSvc.SeedCatalog(ctx); err != nil {
		logger.Log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	validator := controllers.NewRequestValidator()
	routes.RegisterRoutes(r,
		userSvc,
		controllers.NewProductController(productSvc, validator),
		controllers.NewUserController(userSvc),
		controllers.NewCartController(cartSvc),
		controllers.NewOrderController(orderSvc, cartSvc, validator),
	)

	logger.Log.Info("Storefront backend listening",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server stopped", zap.Error(err))
	}
}

// openStore selects the physical store from configuration. Both adapters
// satisfy the same four repository contracts.
func openStore(ctx context.Context, cfg *Config) (*repository.Store, error) {
	switch cfg.StoreBackend {
	case "mongo":
		db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(db), nil
	default:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repository.NewGormStore(db), nil
	}
}
