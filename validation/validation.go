package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Password policy mirrors the storefront's registration form: 8-20 characters
// with at least one uppercase letter, one digit, and one special character.
func ValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 20 {
		return false
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	return upper && digit && special
}

// Register installs the custom rules on gin's binding engine so request
// structs can use `binding:"password"`.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return ValidPassword(fl.Field().String())
		})
	}
}
