package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/horizonstores/backend/controllers"
	"github.com/horizonstores/backend/services"
)

// RegisterRoutes wires the thin HTTP surface over the repository/manager
// contracts. Admin routes require the caller to resolve to the seeded
// administrator account.
func RegisterRoutes(
	r *gin.Engine,
	users *services.UserService,
	pc *controllers.ProductController,
	uc *controllers.UserController,
	cc *controllers.CartController,
	oc *controllers.OrderController,
) {
	api := r.Group("/api")

	api.POST("/auth/register", uc.Register)
	api.POST("/auth/login", uc.Login)
	api.GET("/me", uc.Me)

	api.GET("/products", pc.List)
	api.GET("/products/:id", pc.GetByID)

	api.GET("/cart", cc.GetCart)
	api.POST("/cart/items", cc.AddItem)
	api.PUT("/cart/items/:item_id", cc.UpdateItem)
	api.DELETE("/cart/items/:item_id", cc.RemoveItem)

	api.POST("/checkout", oc.Checkout)
	api.GET("/orders", oc.ListMine)

	admin := api.Group("/admin", controllers.RequireAdmin(users))
	admin.POST("/products", pc.Create)
	admin.POST("/products/bulk", pc.BulkCreate)
	admin.PUT("/products/:id", pc.Update)
	admin.GET("/orders", oc.ListAll)
	admin.PUT("/orders/:id/status", oc.UpdateStatus)
	admin.PUT("/orders/:id/payment", oc.UpdatePayment)
	admin.GET("/reports/orders", oc.Report)
}
