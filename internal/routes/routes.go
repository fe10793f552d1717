package routes

import (
	"digitalstore_back_end/internal/handlers"
	"digitalstore_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries the handlers and middleware RegisterRoutes wires together.
type Deps struct {
	Auth       *handlers.AuthHandler
	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	Orders     *handlers.OrderHandler
	Checkout   *handlers.CheckoutHandler
	Settings   *handlers.SettingsHandler

	AuthRequired gin.HandlerFunc
	UploadsDir   string
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.Static("/uploads", d.UploadsDir)

	api := r.Group("/api")
	api.Use(middleware.Language)

	// Auth
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	// Products
	api.GET("/products", d.Products.List)
	api.GET("/products/search", d.Products.Search)
	api.GET("/products/:id", d.Products.Get)
	api.POST("/products", d.AuthRequired, middleware.RequireAdmin, d.Products.Create)
	api.PUT("/products/:id", d.AuthRequired, middleware.RequireAdmin, d.Products.Update)
	api.DELETE("/products/:id", d.AuthRequired, middleware.RequireAdmin, d.Products.Delete)

	// Categories
	api.GET("/categories", d.Categories.List)
	api.POST("/categories", d.AuthRequired, middleware.RequireAdmin, d.Categories.Create)
	api.PUT("/categories/:id", d.AuthRequired, middleware.RequireAdmin, d.Categories.Update)
	api.DELETE("/categories/:id", d.AuthRequired, middleware.RequireAdmin, d.Categories.Delete)

	// Orders
	api.POST("/orders", d.Orders.Create)
	api.GET("/orders", d.AuthRequired, middleware.RequireAdmin, d.Orders.List)
	api.GET("/orders/my-orders", d.AuthRequired, d.Orders.MyOrders)
	api.PUT("/orders/:id/status", d.AuthRequired, middleware.RequireAdmin, d.Orders.UpdateStatus)

	// Checkout. The webhook route must never run through a body parser:
	// the Stripe signature covers the exact raw bytes.
	api.POST("/checkout/create-session", d.Checkout.CreateSession)
	api.POST("/checkout/webhook", d.Checkout.Webhook)

	// Settings
	api.GET("/settings", d.Settings.Get)
	api.PUT("/settings", d.AuthRequired, middleware.RequireAdmin, d.Settings.Update)
}
