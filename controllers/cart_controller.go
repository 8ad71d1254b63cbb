package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/horizonstores/backend/services"
)

type CartController struct {
	svc *services.CartService
}

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{svc: svc}
}

// GetCart returns the caller's cart, creating an empty one on first access.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	cart, err := cc.svc.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the caller's cart; quantities merge when the
// product is already there.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart, err := cc.svc.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := cc.svc.AddToCart(c.Request.Context(), cart.ID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	cart, err = cc.svc.GetOrCreateCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := cc.svc.UpdateCartItem(c.Request.Context(), c.Param("item_id"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveItem deletes a line; deleting an absent line still succeeds.
func (cc *CartController) RemoveItem(c *gin.Context) {
	if err := cc.svc.RemoveCartItem(c.Request.Context(), c.Param("item_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
