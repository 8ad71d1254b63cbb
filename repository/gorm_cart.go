package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// addItemAttempts bounds the increment/insert retry loop in AddItem. Each
// round only loses to a concurrent add or removal of the same line, so two
// rounds already cover every realistic interleaving.
const addItemAttempts = 3

// GormCartRepository implements CartRepo on the relational store. The unique
// index on carts.user_id closes the lazy-creation race; the unique index on
// (cart_id, product_id) plus an in-place UPDATE closes the merge race.
type GormCartRepository struct {
	db *gorm.DB
}

func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var rec cartRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = cartRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if createErr := r.db.WithContext(ctx).Create(&rec).Error; createErr != nil {
			if !isUniqueViolation(createErr) {
				return nil, createErr
			}
			// Lost the creation race; the winner's cart is authoritative.
			if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}
	return r.load(ctx, &rec)
}

func (r *GormCartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var rec cartRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.load(ctx, &rec)
}

func (r *GormCartRepository) AddItem(ctx context.Context, cartID string, productID string, quantity int, snapshot models.ProductSnapshot) error {
	var cart cartRecord
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", cartID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("cart not found", nil)
	}
	if err != nil {
		return err
	}

	// Atomic in-place increment first; two racing adds for the same product
	// both land because neither reads the old quantity. The loop covers the
	// remaining interleavings: a concurrent add inserting the row between
	// the UPDATE and the INSERT, and a concurrent removal deleting it again
	// before the fallback increment.
	for attempt := 0; attempt < addItemAttempts; attempt++ {
		res := r.db.WithContext(ctx).Model(&cartItemRecord{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		rec := cartItemRecord{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			Product:   snapshot,
		}
		err := r.db.WithContext(ctx).Create(&rec).Error
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return apperrors.Conflict("cart item contention", nil)
}

func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, itemID)
	}
	return r.db.WithContext(ctx).Model(&cartItemRecord{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity).Error
}

func (r *GormCartRepository) RemoveItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&cartItemRecord{}).Error
}

func (r *GormCartRepository) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&cartItemRecord{}).Error
}

func (r *GormCartRepository) load(ctx context.Context, rec *cartRecord) (*models.Cart, error) {
	var itemRecs []cartItemRecord
	if err := r.db.WithContext(ctx).Where("cart_id = ?", rec.ID).Find(&itemRecs).Error; err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(itemRecs))
	for _, ir := range itemRecs {
		items = append(items, models.CartItem{
			ID:        ir.ID,
			ProductID: ir.ProductID,
			Quantity:  ir.Quantity,
			Product:   ir.Product,
		})
	}
	return &models.Cart{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Items:     items,
		CreatedAt: rec.CreatedAt,
	}, nil
}
