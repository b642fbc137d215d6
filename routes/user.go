package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/config"
	cartControllers "github.com/brownbean/coffeeshop-api/controllers/cart"
	orderControllers "github.com/brownbean/coffeeshop-api/controllers/order"
	userControllers "github.com/brownbean/coffeeshop-api/controllers/user"
	"github.com/brownbean/coffeeshop-api/middleware"
)

// SetupUserRoutes registers all "/api/user/*" endpoints plus order placement.
// Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("", userControllers.GetUser(db))    // GET /api/user
		userGroup.PUT("", userControllers.UpdateUser(db)) // PUT /api/user

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))              // GET /api/user/cart
			cartGroup.POST("", cartControllers.UpdateCartItem(db))          // POST /api/user/cart
			cartGroup.POST("/add", cartControllers.AddToCart(db))           // POST /api/user/cart/add
			cartGroup.POST("/checkout", cartControllers.CheckoutNowHandler(db)) // POST /api/user/cart/checkout
			cartGroup.POST("/clear", userControllers.ClearCart(db))         // POST /api/user/cart/clear
		}

		// ──────────────── Orders ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db)) // GET /api/user/orders
	}

	// Cart checkout creates the order itself
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		orders.POST("", orderControllers.CreateOrderHandler(db)) // POST /api/orders
	}
}
