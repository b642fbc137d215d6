package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brownbean/coffeeshop-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Admin{}))
	return db
}

func TestAuthorize(t *testing.T) {
	db := setupTestDB(t)

	userHash, err := HashPassword("Cust0mer!pw")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Name: "Alice", Email: "alice@example.com", Password: userHash}).Error)

	adminHash, err := HashPassword("Back0ffice!")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Admin{Name: "Root", Email: "root@example.com", Password: adminHash}).Error)

	t.Run("UserTableYieldsUserRole", func(t *testing.T) {
		p, err := Authorize(db, "alice@example.com", "Cust0mer!pw")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, p.Role)
		assert.Equal(t, "Alice", p.Name)
	})

	t.Run("AdminTableYieldsAdminRole", func(t *testing.T) {
		p, err := Authorize(db, "root@example.com", "Back0ffice!")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, p.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := Authorize(db, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := Authorize(db, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIssueJWT(t *testing.T) {
	const secret = "test-secret"

	signed, err := IssueJWT(secret, &Principal{ID: 7, Name: "Alice", Email: "alice@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "User", claims["role"])
	assert.Equal(t, "alice@example.com", claims["email"])
}
