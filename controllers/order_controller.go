package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizonstores/backend/services"
)

type OrderController struct {
	svc       *services.OrderService
	carts     *services.CartService
	validator *RequestValidator
}

func NewOrderController(svc *services.OrderService, carts *services.CartService, validator *RequestValidator) *OrderController {
	return &OrderController{svc: svc, carts: carts, validator: validator}
}

// Checkout converts the caller's cart into an order. An optional
// X-Idempotency-Key header makes retries return the original order instead
// of creating a duplicate.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	cart, err := oc.carts.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := oc.svc.CreateOrder(c.Request.Context(), userID, cart.Items, c.GetHeader("X-Idempotency-Key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListMine returns the caller's order history, newest first.
func (oc *OrderController) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	orders, err := oc.svc.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListAll returns every order, newest first (admin).
func (oc *OrderController) ListAll(c *gin.Context) {
	orders, err := oc.svc.GetOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus sets the order's status dimension (admin).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := oc.svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdatePayment flips the order's payment dimension (admin).
func (oc *OrderController) UpdatePayment(c *gin.Context) {
	var req struct {
		Received *bool `json:"received" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := oc.svc.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), *req.Received); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Report aggregates orders over an inclusive date range (admin).
func (oc *OrderController) Report(c *gin.Context) {
	start, end, err := oc.validator.ParseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := oc.svc.Report(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
