package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and injected everywhere; business code
// never reads the environment directly.
type Config struct {
	Port      string
	DSN       string
	JWTSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string

	// Filesystem object store: assets live under UploadDir/<bucket>/<id>/<n>.jpg
	UploadDir          string
	ProductImageBucket string
	UserIconBucket     string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getEnv("PORT", "8080"),
		DSN:       os.Getenv("DATABASE_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		ProductImageBucket: getEnv("PRODUCT_IMAGE_BUCKET", "product-images"),
		UserIconBucket:     getEnv("USER_ICON_BUCKET", "user-icons"),
	}
}

// Validate rejects a config that cannot run the service. Mail credentials are
// allowed to be empty so local development works without an SMTP account; the
// forgot-password flow fails explicitly when dispatch is attempted.
func (c Config) Validate() error {
	if c.DSN == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR cannot be empty")
	}
	return nil
}
