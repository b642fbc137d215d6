package userControllers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/auth"
	"github.com/brownbean/coffeeshop-api/mailer"
	"github.com/brownbean/coffeeshop-api/models"
)

const otpTTL = time.Hour

var (
	ErrAccountNotFound = errors.New("account doesnt exist")
	ErrResetNotFound   = errors.New("reset request not found")
	ErrOTPInvalid      = errors.New("invalid OTP")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrMailFailed      = errors.New("failed to send email")
)

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required,len=6"`
	Password string `json:"password" binding:"required,password"`
}

func generateOTP() (string, error) {
	const digits = "0123456789"
	otp := make([]byte, 6)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		otp[i] = digits[n.Int64()]
	}
	return string(otp), nil
}

// ForgotPassword issues a one-time password for the account. The mail goes
// out first; the verification row is persisted only on confirmed dispatch, so
// an OTP that was never delivered can never be live. Issuing a new OTP
// invalidates any earlier unredeemed one for the same user.
func ForgotPassword(db *gorm.DB, m mailer.Mailer, email string) error {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	body := "You have requested for a One Time Password. Your OTP is " + otp +
		", if this was not requested by you, contact us through this mail. Thank you!"
	if err := m.Send(user.Email, "One Time Password by The Coffee Shop", body); err != nil {
		return ErrMailFailed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Verification{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Verification{UserID: user.ID, OTP: string(hashed)}).Error
	})
}

// ResetPassword redeems an OTP: single use, one-hour window checked lazily at
// confirm time. On success the verification is deleted and the password hash
// replaced in the same transaction.
func ResetPassword(db *gorm.DB, email, otp, password string) error {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	var request models.Verification
	if err := db.Where("user_id = ?", user.ID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(request.OTP), []byte(otp)) != nil {
		return ErrOTPInvalid
	}

	if time.Since(request.CreatedAt) > otpTTL {
		return ErrOTPExpired
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&request).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("password", hash).Error
	})
}

// POST /api/user/forgot-password
func ForgotPasswordHandler(db *gorm.DB, m mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := ForgotPassword(db, m, input.Email); err != nil {
			switch {
			case errors.Is(err, ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Account doesnt exist"})
			case errors.Is(err, ErrMailFailed):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue OTP"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
	}
}

// POST /api/user/reset-password
func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := ResetPassword(db, input.Email, input.OTP, input.Password); err != nil {
			switch {
			case errors.Is(err, ErrAccountNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Account doesnt exist"})
			case errors.Is(err, ErrResetNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Reset request not found"})
			case errors.Is(err, ErrOTPInvalid):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			case errors.Is(err, ErrOTPExpired):
				c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
	}
}
