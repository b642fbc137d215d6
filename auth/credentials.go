package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Authorize checks the credentials against the users table first, then the
// admins table. Which table matches decides the principal's role.
func Authorize(db *gorm.DB, email, password string) (*Principal, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
			return &Principal{ID: user.ID, Name: user.Name, Email: user.Email, Role: models.RoleUser}, nil
		}
		return nil, ErrInvalidCredentials
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var admin models.Admin
	err = db.Where("email = ?", email).First(&admin).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) == nil {
			return &Principal{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: models.RoleAdmin}, nil
		}
		return nil, ErrInvalidCredentials
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, ErrInvalidCredentials
}

// IssueJWT generates a signed session token carrying {id, role}.
func IssueJWT(secret string, p *Principal) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"email":   p.Email,
		"name":    p.Name,
		"role":    string(p.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		principal, err := Authorize(db, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		token, err := IssueJWT(secret, principal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    principal,
			"token":   token,
		})
	}
}

// HashPassword wraps bcrypt with the cost used across the service.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
