package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// Record types for the relational layout: six tables with foreign keys
// user->cart, user->order, product->cart_item, product->order_item. Snapshot
// columns are denormalized inline with a snap_/user_ prefix.

type userRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Mobile    string
	Address   string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

type productRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	ImageURL  string
	MRP       float64
	Price     float64
	Details   string
	Category  string
	InStock   bool
	CreatedAt time.Time
}

func (productRecord) TableName() string { return "products" }

type cartRecord struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (cartRecord) TableName() string { return "carts" }

type cartItemRecord struct {
	ID        string                 `gorm:"primaryKey"`
	CartID    string                 `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID string                 `gorm:"not null;uniqueIndex:idx_cart_product"`
	Quantity  int                    `gorm:"not null"`
	Product   models.ProductSnapshot `gorm:"embedded;embeddedPrefix:snap_"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

type orderRecord struct {
	ID              string              `gorm:"primaryKey"`
	UserID          string              `gorm:"index;not null"`
	User            models.UserSnapshot `gorm:"embedded;embeddedPrefix:user_"`
	Total           float64
	Status          string `gorm:"not null;default:'pending'"`
	PaymentReceived bool
	CreatedAt       time.Time `gorm:"index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        string                 `gorm:"primaryKey"`
	OrderID   string                 `gorm:"index;not null"`
	ProductID string                 `gorm:"not null"`
	Quantity  int                    `gorm:"not null"`
	Price     float64                `gorm:"not null"`
	Product   models.ProductSnapshot `gorm:"embedded;embeddedPrefix:snap_"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// AutoMigrate creates the six tables and their indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRecord{},
		&productRecord{},
		&cartRecord{},
		&cartItemRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// NewGormStore assembles the four repositories on top of one gorm handle.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    &GormUserRepository{db: db},
		Products: &GormProductRepository{db: db},
		Carts:    &GormCartRepository{db: db},
		Orders:   &GormOrderRepository{db: db},
	}
}

// isUniqueViolation recognizes unique constraint failures from the sqlite
// driver. Not every driver translates to gorm.ErrDuplicatedKey, so the
// message is checked as well.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GormUserRepository implements UserRepo on the relational store.
type GormUserRepository struct {
	db *gorm.DB
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	rec := userRecord{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Mobile:    user.Mobile,
		Address:   user.Address,
		Password:  user.Password,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email already registered", err)
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (rec *userRecord) toModel() *models.User {
	return &models.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Mobile:    rec.Mobile,
		Address:   rec.Address,
		Password:  rec.Password,
		IsAdmin:   rec.IsAdmin,
		CreatedAt: rec.CreatedAt,
	}
}

// GormProductRepository implements ProductRepo on the relational store.
type GormProductRepository struct {
	db *gorm.DB
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	rec := productRecordFrom(product)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var recs []productRecord
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}
	return productModels(recs), nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m := rec.toModel()
	return &m, nil
}

func (r *GormProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var recs []productRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(details) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return productModels(recs), nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":      product.Name,
			"image_url": product.ImageURL,
			"mrp":       product.MRP,
			"price":     product.Price,
			"details":   product.Details,
			"category":  product.Category,
			"in_stock":  product.InStock,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found", nil)
	}
	return nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&productRecord{}).Count(&n).Error
	return n, err
}

func productRecordFrom(p *models.Product) productRecord {
	return productRecord{
		ID:        p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		MRP:       p.MRP,
		Price:     p.Price,
		Details:   p.Details,
		Category:  p.Category,
		InStock:   p.InStock,
		CreatedAt: p.CreatedAt,
	}
}

func (rec *productRecord) toModel() models.Product {
	return models.Product{
		ID:        rec.ID,
		Name:      rec.Name,
		ImageURL:  rec.ImageURL,
		MRP:       rec.MRP,
		Price:     rec.Price,
		Details:   rec.Details,
		Category:  rec.Category,
		InStock:   rec.InStock,
		CreatedAt: rec.CreatedAt,
	}
}

func productModels(recs []productRecord) []models.Product {
	out := make([]models.Product, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toModel())
	}
	return out
}
