package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/auth"
	"github.com/brownbean/coffeeshop-api/config"
	productControllers "github.com/brownbean/coffeeshop-api/controllers/product"
	userControllers "github.com/brownbean/coffeeshop-api/controllers/user"
	"github.com/brownbean/coffeeshop-api/mailer"
)

// SetupPublicRoutes registers everything reachable without a session: login,
// registration, the password-reset flow, and the storefront catalog.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, m mailer.Mailer) {
	api := r.Group("/api")
	{
		api.POST("/auth/login", auth.LoginHandler(db, cfg.JWTSecret))

		api.POST("/user/register", userControllers.Register(db))
		api.POST("/user/forgot-password", userControllers.ForgotPasswordHandler(db, m))
		api.POST("/user/reset-password", userControllers.ResetPasswordHandler(db))

		api.GET("/products", productControllers.GetProducts(db))
		api.GET("/products/:id", productControllers.GetProductByID(db))
		api.GET("/categories", productControllers.GetAllCategoriesWithProducts(db))
	}
}
