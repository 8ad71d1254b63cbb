package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/models"
)

// GormOrderRepository implements OrderRepo on the relational store.
type GormOrderRepository struct {
	db *gorm.DB
}

func (r *GormOrderRepository) CreateWithCartClear(ctx context.Context, order *models.Order, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := orderRecord{
			ID:              order.ID,
			UserID:          order.UserID,
			User:            order.User,
			Total:           order.Total,
			Status:          order.Status,
			PaymentReceived: order.PaymentReceived,
			CreatedAt:       order.CreatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		itemRecs := make([]orderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			itemRecs = append(itemRecs, orderItemRecord{
				ID:        item.ID,
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Product:   item.Product,
			})
		}
		if len(itemRecs) > 0 {
			if err := tx.Create(&itemRecs).Error; err != nil {
				return err
			}
		}

		if cartID != "" {
			if err := tx.Where("cart_id = ?", cartID).Delete(&cartItemRecord{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var rec orderRecord
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	orders, err := r.attachItems(ctx, []orderRecord{rec})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var recs []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return r.attachItems(ctx, recs)
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var recs []orderRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, recs)
}

func (r *GormOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var recs []orderRecord
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, recs)
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	res := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", orderID).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order not found", nil)
	}
	return nil
}

func (r *GormOrderRepository) UpdatePayment(ctx context.Context, orderID string, received bool) error {
	res := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", orderID).
		UpdateColumn("payment_received", received)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order not found", nil)
	}
	return nil
}

// attachItems loads the line items for a page of orders in one query.
func (r *GormOrderRepository) attachItems(ctx context.Context, recs []orderRecord) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(recs))
	if len(recs) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}

	var itemRecs []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Find(&itemRecs).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[string][]models.OrderItem, len(recs))
	for _, ir := range itemRecs {
		byOrder[ir.OrderID] = append(byOrder[ir.OrderID], models.OrderItem{
			ID:        ir.ID,
			ProductID: ir.ProductID,
			Quantity:  ir.Quantity,
			Price:     ir.Price,
			Product:   ir.Product,
		})
	}

	for _, rec := range recs {
		orders = append(orders, models.Order{
			ID:              rec.ID,
			UserID:          rec.UserID,
			User:            rec.User,
			Items:           byOrder[rec.ID],
			Total:           rec.Total,
			Status:          rec.Status,
			PaymentReceived: rec.PaymentReceived,
			CreatedAt:       rec.CreatedAt,
		})
	}
	return orders, nil
}
