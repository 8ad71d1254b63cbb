package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/common/logger"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/repository"
)

// IdempotencyStore remembers which order a checkout key produced, so a
// retried checkout returns the original order instead of creating a second
// one. Implemented on Redis; optional.
type IdempotencyStore interface {
	GetOrderID(ctx context.Context, key string) (string, error)
	SetOrderID(ctx context.Context, key, orderID string) error
}

// OrderService converts carts into immutable order snapshots and manages
// their two independent state dimensions.
type OrderService struct {
	users  repository.UserRepo
	carts  repository.CartRepo
	orders repository.OrderRepo
	idem   IdempotencyStore
}

func NewOrderService(users repository.UserRepo, carts repository.CartRepo, orders repository.OrderRepo, idem IdempotencyStore) *OrderService {
	return &OrderService{users: users, carts: carts, orders: orders, idem: idem}
}

// CreateOrder persists an immutable snapshot of the user and the supplied
// line items, with the total rounded half-up to two decimal places, then
// empties the user's cart inside the same transactional boundary. When an
// idempotency key is supplied and has been seen before, the original order
// is returned and nothing is written.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []models.CartItem, idempotencyKey string) (*models.Order, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found", nil)
	}

	// The replay lookup runs before any item validation: a retried checkout
	// arrives after the original already cleared the cart, so the retry
	// legitimately carries no items.
	if idempotencyKey != "" && s.idem != nil {
		orderID, err := s.idem.GetOrderID(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if orderID != "" {
			order, err := s.orders.FindByID(ctx, orderID)
			if err != nil {
				return nil, err
			}
			if order == nil {
				return nil, apperrors.NotFound("order recorded for this idempotency key no longer exists", nil)
			}
			return order, nil
		}
	}

	if len(items) == 0 {
		return nil, apperrors.Validation("at least one item is required", nil)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.Validation("item quantity must be a positive integer", nil)
		}
	}

	// Monetary total in decimal space: unit sale price at order time comes
	// from the line's snapshot, never the live product.
	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		price := decimal.NewFromFloat(item.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Product:   item.Product,
		})
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		User:            user.Snapshot(),
		Items:           orderItems,
		Total:           total.Round(2).InexactFloat64(),
		Status:          models.OrderStatusPending,
		PaymentReceived: false,
		CreatedAt:       time.Now().UTC(),
	}

	var cartID string
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		cartID = cart.ID
	}

	if err := s.orders.CreateWithCartClear(ctx, order, cartID); err != nil {
		return nil, err
	}

	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.SetOrderID(ctx, idempotencyKey, order.ID); err != nil {
			// The order is durable; losing the key only costs dedup of a
			// later retry. Log and move on.
			logger.Log.Warn("Failed to record checkout idempotency key",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}
	return order, nil
}

// GetOrders returns every order, newest first, with full line items.
func (s *OrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}

// GetUserOrders returns one user's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

// UpdateOrderStatus sets the status dimension. Both directions are allowed;
// a completed order can be reopened.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !models.ValidOrderStatus(status) {
		return apperrors.Validation("status must be pending or completed", nil)
	}
	return s.orders.UpdateStatus(ctx, orderID, status)
}

// UpdatePaymentStatus flips the payment dimension, independent of status.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID string, received bool) error {
	return s.orders.UpdatePayment(ctx, orderID, received)
}

// GetOrdersForDateRange returns orders created within [start, end], both ends
// inclusive, newest first. An inverted range is rejected.
func (s *OrderService) GetOrdersForDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	if start.After(end) {
		return nil, apperrors.Validation("start date must not be after end date", nil)
	}
	return s.orders.FindByDateRange(ctx, start, end)
}

// Report aggregates the date range for the admin reporting screen: order
// count and revenue sum alongside the orders themselves.
func (s *OrderService) Report(ctx context.Context, start, end time.Time) (*models.ReportData, error) {
	orders, err := s.GetOrdersForDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, order := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(order.Total))
	}
	return &models.ReportData{
		StartDate:    start,
		EndDate:      end,
		TotalOrders:  len(orders),
		TotalRevenue: revenue.Round(2).InexactFloat64(),
		Orders:       orders,
	}, nil
}
