package orderControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Item{},
		&models.Order{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()

	category := models.Category{Name: "Coffee " + name, Description: "test"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{Name: name, Price: price, Available: true, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCartItem(t *testing.T, db *gorm.DB, userID uint, product models.Product, quantity int) models.Item {
	t.Helper()

	item := models.Item{
		ProductID:  product.ID,
		UserID:     userID,
		CartUserID: &userID,
		Quantity:   quantity,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestCreateOrder_CartCheckout(t *testing.T) {
	db := setupTestDB(t)

	// Cart: A price 1000 qty 2, B price 500 qty 1
	productA := seedProduct(t, db, "Espresso", 1000)
	productB := seedProduct(t, db, "Cappuccino", 500)
	itemA := seedCartItem(t, db, 1, productA, 2)
	itemB := seedCartItem(t, db, 1, productB, 1)

	order, err := CreateOrder(db, 1, CreateOrderRequest{
		Items:    []uint{itemA.ID, itemB.ID},
		Delivery: false,
		Total:    2500,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.False(t, order.Delivery)
	assert.Equal(t, 2500.0, order.Total)
	assert.NotEmpty(t, order.Ref)
	assert.Nil(t, order.CompletedAt)
	require.Len(t, order.Items, 2)

	for _, line := range order.Items {
		require.NotNil(t, line.OrderID)
		assert.Equal(t, order.ID, *line.OrderID)
		assert.Nil(t, line.CartUserID, "ordered lines must leave the cart")
	}

	var cartCount int64
	db.Model(&models.Item{}).Where("cart_user_id = ?", 1).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)
}

// The stored total is the one the buyer submitted; a catalog price change
// between page load and checkout is deliberately not reflected.
func TestCreateOrder_TotalUsesSubmittedPrices(t *testing.T) {
	db := setupTestDB(t)

	product := seedProduct(t, db, "Flat White", 1000)
	item := seedCartItem(t, db, 1, product, 2)

	// Price changes after the buyer loaded the cart page
	require.NoError(t, db.Model(&product).Update("price", 9999).Error)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 2000})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, order.Total, "total must not be recomputed from current catalog prices")
}

func TestCreateOrder_EmptyItemSet(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{}})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

// Ids that resolve to no rows must roll the whole order back; otherwise an
// order would persist with zero lines and an arbitrary caller-chosen total.
func TestCreateOrder_UnknownItemsRollBack(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{9991, 9992}, Total: 123456})
	assert.ErrorIs(t, err, ErrItemsNotFound)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders, "no order may survive a failed item connect")
}

func TestCreateOrder_ForeignItemsRollBack(t *testing.T) {
	db := setupTestDB(t)

	product := seedProduct(t, db, "Lungo", 400)
	mine := seedCartItem(t, db, 1, product, 1)
	theirs := seedCartItem(t, db, 7, product, 1)

	_, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{mine.ID, theirs.ID}, Total: 800})
	assert.ErrorIs(t, err, ErrItemsNotFound)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)

	// The caller's own line stays in the cart, untouched by the rollback
	var line models.Item
	require.NoError(t, db.First(&line, mine.ID).Error)
	assert.Nil(t, line.OrderID)
	require.NotNil(t, line.CartUserID)
}

func TestUpdateOrder_CompletedAtStamping(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Americano", 300)

	newOrder := func() *models.Order {
		item := seedCartItem(t, db, 1, product, 1)
		order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 300})
		require.NoError(t, err)
		return order
	}

	t.Run("NonTerminalWritesLeaveItNull", func(t *testing.T) {
		order := newOrder()

		for _, status := range []string{"Preparing", "Prepared", "OTW", "Processing"} {
			updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: status})
			require.NoError(t, err)
			assert.Nil(t, updated.CompletedAt, "status %s must not stamp completed_at", status)
		}
	})

	t.Run("CompletedStamps", func(t *testing.T) {
		order := newOrder()

		updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: "Completed"})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("CancelledStamps", func(t *testing.T) {
		order := newOrder()

		updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: "Cancelled"})
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("StampSurvivesLaterEdits", func(t *testing.T) {
		order := newOrder()

		completed, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: "Completed"})
		require.NoError(t, err)
		require.NotNil(t, completed.CompletedAt)

		// Back-date the stamp so a re-stamp would be visible
		stamp := time.Now().Add(-48 * time.Hour)
		require.NoError(t, db.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("completed_at", stamp).Error)

		// Admin toggles the delivery flag on the completed order; the
		// original completion time must hold
		edited, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: "Completed", Delivery: true})
		require.NoError(t, err)
		require.NotNil(t, edited.CompletedAt)
		assert.WithinDuration(t, stamp, *edited.CompletedAt, time.Second)
	})
}

// Status writes are not validated against the current state; any status may
// follow any other.
func TestUpdateOrder_PermissiveTransitions(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Cortado", 550)
	item := seedCartItem(t, db, 1, product, 1)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 550})
	require.NoError(t, err)

	for _, status := range []string{"OTW", "Preparing", "Completed", "Processing"} {
		updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatus(status), updated.Status)
	}
}

func TestUpdateOrder_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Ristretto", 350)
	item := seedCartItem(t, db, 1, product, 1)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 350})
	require.NoError(t, err)

	_, err = UpdateOrder(db, order.ID, UpdateOrderRequest{Status: "Teleported"})
	assert.EqualError(t, err, "invalid order status")
}

// Admin submits a new line (no id, quantity 3), zeroes an existing line, and
// cancels the order, all in one update.
func TestUpdateOrder_LineSetEdit(t *testing.T) {
	db := setupTestDB(t)

	productX := seedProduct(t, db, "Macchiato", 700)
	productY := seedProduct(t, db, "Affogato", 900)
	existing := seedCartItem(t, db, 1, productY, 2)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{existing.ID}, Total: 1800})
	require.NoError(t, err)

	updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{
		Status: "Cancelled",
		Items: []OrderItemEdit{
			{ID: 0, ProductID: productX.ID, Quantity: 3},
			{ID: existing.ID, ProductID: productY.ID, Quantity: 0},
		},
	})
	require.NoError(t, err)

	// New line for product X with quantity 3
	require.Len(t, updated.Items, 1)
	assert.Equal(t, productX.ID, updated.Items[0].ProductID)
	assert.Equal(t, 3, updated.Items[0].Quantity)
	assert.Equal(t, order.UserID, updated.Items[0].UserID, "created line belongs to the order's user")

	// Existing line deleted
	var gone int64
	db.Model(&models.Item{}).Where("id = ?", existing.ID).Count(&gone)
	assert.Equal(t, int64(0), gone)

	// Terminal status stamped
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	require.NotNil(t, updated.CompletedAt)
}

func TestUpdateOrder_LineQuantityUpdate(t *testing.T) {
	db := setupTestDB(t)

	product := seedProduct(t, db, "Doppio", 600)
	item := seedCartItem(t, db, 1, product, 1)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 600})
	require.NoError(t, err)

	updated, err := UpdateOrder(db, order.ID, UpdateOrderRequest{
		Status: "Preparing",
		Items:  []OrderItemEdit{{ID: item.ID, ProductID: product.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateOrder(db, 424242, UpdateOrderRequest{Status: "Preparing"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderByIDHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	product := seedProduct(t, db, "Irish", 1200)
	item := seedCartItem(t, db, 1, product, 1)

	order, err := CreateOrder(db, 1, CreateOrderRequest{Items: []uint{item.ID}, Total: 1200})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/admin/orders/:orderID", GetOrderByIDHandler(db))

	get := func(param string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/"+param, nil)
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("ByNumericID", func(t *testing.T) {
		w := get("1")
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("ByRef", func(t *testing.T) {
		w := get(order.Ref)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, order.Ref, got.Ref)
	})

	t.Run("UnknownID", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("424242").Code)
	})

	t.Run("UnknownRef", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("20990101000000-no-such-ref").Code)
	})
}

func TestMapOrderStatus(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want models.OrderStatus
	}{
		{"Processing", models.OrderStatusProcessing},
		{"preparing", models.OrderStatusPreparing},
		{"PREPARED", models.OrderStatusPrepared},
		{"otw", models.OrderStatusOTW},
		{"Completed", models.OrderStatusCompleted},
		{"cancelled", models.OrderStatusCancelled},
	} {
		got, err := mapOrderStatus(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := mapOrderStatus("shipped")
	assert.Error(t, err)
}
