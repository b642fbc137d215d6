package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/config"
	adminController "github.com/brownbean/coffeeshop-api/controllers/admin"
	orderControllers "github.com/brownbean/coffeeshop-api/controllers/order"
	productcontroller "github.com/brownbean/coffeeshop-api/controllers/product"
	userControllers "github.com/brownbean/coffeeshop-api/controllers/user"
	"github.com/brownbean/coffeeshop-api/middleware"
	"github.com/brownbean/coffeeshop-api/storage"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires a JWT
// carrying the Admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, store *storage.Store) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin)
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.DELETE("/users/:id", userControllers.DeleteUser(db, store, cfg.UserIconBucket))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, store, cfg.ProductImageBucket))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, store, cfg.ProductImageBucket))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, store, cfg.ProductImageBucket))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID", orderControllers.UpdateOrderHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}
	}
}
