package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/common/logger"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/repository"
)

// ProductCreateRequest carries the caller-supplied fields of a new product.
type ProductCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	ImageURL string  `json:"image_url"`
	MRP      float64 `json:"mrp" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Details  string  `json:"details"`
	Category string  `json:"category"`
	InStock  bool    `json:"in_stock"`
}

// ProductService manages the live catalog.
type ProductService struct {
	repo repository.ProductRepo
}

func NewProductService(repo repository.ProductRepo) *ProductService {
	return &ProductService{repo: repo}
}

// AddProduct stores a new product, generating its id and creation timestamp.
// Duplicate names are allowed. A sale price above the MRP is tolerated; the
// relation only drives discount display.
func (s *ProductService) AddProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("product name is required", nil)
	}
	if req.Price < 0 || req.MRP < 0 {
		return nil, apperrors.Validation("prices must not be negative", nil)
	}

	product := &models.Product{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		MRP:       req.MRP,
		Price:     req.Price,
		Details:   req.Details,
		Category:  req.Category,
		InStock:   req.InStock,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProducts returns the whole catalog.
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProductByID returns the product or (nil, nil) when it does not exist.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// SearchProducts matches query case-insensitively over name, details and
// category. A blank query means no filter and returns the whole catalog.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.Search(ctx, query)
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return apperrors.Validation("product id is required", nil)
	}
	if strings.TrimSpace(product.Name) == "" {
		return apperrors.Validation("product name is required", nil)
	}
	return s.repo.Update(ctx, product)
}

// SeedCatalog inserts a small starter catalog when the store is empty.
// Idempotent: a non-empty catalog is left untouched.
func (s *ProductService) SeedCatalog(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	starters := []ProductCreateRequest{
		{Name: "Ceramic Mug", ImageURL: "/images/mug.jpg", MRP: 500, Price: 400, Details: "Stoneware mug, 350ml", Category: "Kitchen", InStock: true},
		{Name: "Cotton Tote Bag", ImageURL: "/images/tote.jpg", MRP: 350, Price: 299, Details: "Reusable shopping tote", Category: "Accessories", InStock: true},
		{Name: "Desk Lamp", ImageURL: "/images/lamp.jpg", MRP: 1500, Price: 1199, Details: "Warm LED desk lamp", Category: "Home", InStock: true},
	}
	for _, req := range starters {
		if _, err := s.AddProduct(ctx, req); err != nil {
			return err
		}
	}
	logger.Log.Info("Seeded starter catalog", zap.Int("products", len(starters)))
	return nil
}
