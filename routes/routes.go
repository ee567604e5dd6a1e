package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylehub-labs/stylehub-backend-go/handlers"
	customMiddleware "github.com/stylehub-labs/stylehub-backend-go/middleware"
	"github.com/stylehub-labs/stylehub-backend-go/store"
	"github.com/stylehub-labs/stylehub-backend-go/utils"
)

// Handlers bundles every handler group for route registration.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Orders   *handlers.OrderHandler
	Payments *handlers.PaymentHandler
	Admin    *handlers.AdminHandler
}

func SetupRoutes(e *echo.Echo, h Handlers, tokens *utils.TokenManager, users store.UserStore) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	auth := customMiddleware.Auth(tokens, users)

	// Public auth routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/profile", h.Auth.Profile, auth)
	api.PUT("/auth/profile", h.Auth.UpdateProfile, auth)
	api.POST("/auth/address", h.Auth.AddAddress, auth)

	// Product routes (public; reviews require auth)
	api.GET("/products", h.Products.List)
	api.GET("/products/bestsellers", h.Products.Bestsellers)
	api.GET("/products/featured", h.Products.Featured)
	api.GET("/products/:id", h.Products.Get)
	api.GET("/products/:id/related", h.Products.Related)
	api.POST("/products/:id/reviews", h.Products.CreateReview, auth)

	// Cart routes
	cart := api.Group("/cart", auth)
	cart.GET("", h.Cart.Get)
	cart.POST("", h.Cart.AddItem)
	cart.PUT("/:itemId", h.Cart.UpdateItem)
	cart.DELETE("/:itemId", h.Cart.RemoveItem)
	cart.DELETE("", h.Cart.Clear)

	// Order routes
	orders := api.Group("/orders", auth)
	orders.POST("", h.Orders.Create)
	orders.GET("/myorders", h.Orders.ListMine)
	orders.GET("/:id", h.Orders.Get)
	orders.PUT("/:id/pay", h.Orders.Pay)
	orders.PUT("/:id/cancel", h.Orders.Cancel)

	// Payment routes
	api.POST("/stripe/create-checkout-session", h.Payments.CreateCheckoutSession, auth)
	api.POST("/stripe/verify-session", h.Payments.VerifySession, auth)
	api.GET("/payment/stripe/key", h.Payments.PublishableKey, auth)

	// Admin routes
	admin := api.Group("/admin", auth, customMiddleware.AdminOnly)
	admin.GET("/stats", h.Admin.Stats)
	admin.POST("/products", h.Admin.CreateProduct)
	admin.PUT("/products/:id", h.Admin.UpdateProduct)
	admin.DELETE("/products/:id", h.Admin.DeleteProduct)
	admin.PUT("/products/:id/bestseller", h.Admin.ToggleBestseller)
	admin.GET("/orders", h.Admin.ListOrders)
	admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
	admin.GET("/users", h.Admin.ListUsers)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.PUT("/users/:id/admin", h.Admin.ToggleAdmin)
}
