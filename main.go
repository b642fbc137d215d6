package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/config"
	"github.com/brownbean/coffeeshop-api/mailer"
	"github.com/brownbean/coffeeshop-api/models"
	"github.com/brownbean/coffeeshop-api/routes"
	"github.com/brownbean/coffeeshop-api/storage"
	"github.com/brownbean/coffeeshop-api/validation"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Item{},
		&models.Order{},
		&models.Verification{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	validation.Register()

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Static serving for uploaded assets
	r.Static("/uploads", cfg.UploadDir)

	store := storage.New(cfg.UploadDir)
	m := mailer.New(cfg)

	routes.SetupRoutes(r, db, cfg, store, m)

	log.Printf("✅ Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	return db
}
