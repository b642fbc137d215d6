package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/config"
	"github.com/brownbean/coffeeshop-api/mailer"
	"github.com/brownbean/coffeeshop-api/storage"
)

// SetupRoutes is the single entry-point that wires up the public, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, store *storage.Store, m mailer.Mailer) {
	// 1️⃣ Public routes (no middleware)
	SetupPublicRoutes(r, db, cfg, m)

	// 2️⃣ User routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// 3️⃣ Admin routes (JWT-protected, Admin role)
	SetupAdminRoutes(r, db, cfg, store)
}
