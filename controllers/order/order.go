package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
)

var (
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrItemsNotFound = errors.New("cart items not found")
	ErrOrderNotFound = errors.New("order not found")
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	Items    []uint  `json:"items" binding:"required"`
	Delivery bool    `json:"delivery"`
	Total    float64 `json:"total" binding:"min=0"`
}

type OrderItemEdit struct {
	ID        uint `json:"id"` // 0 means the line has no persisted identifier yet
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"min=0"`
}

type UpdateOrderRequest struct {
	Delivery bool            `json:"delivery"`
	Status   string          `json:"status" binding:"required"`
	Items    []OrderItemEdit `json:"items"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case strings.ToLower(string(models.OrderStatusProcessing)):
		return models.OrderStatusProcessing, nil
	case strings.ToLower(string(models.OrderStatusPreparing)):
		return models.OrderStatusPreparing, nil
	case strings.ToLower(string(models.OrderStatusPrepared)):
		return models.OrderStatusPrepared, nil
	case strings.ToLower(string(models.OrderStatusOTW)):
		return models.OrderStatusOTW, nil
	case strings.ToLower(string(models.OrderStatusCompleted)):
		return models.OrderStatusCompleted, nil
	case strings.ToLower(string(models.OrderStatusCancelled)):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id64), true
}

// -------- Core Logic --------

// CreateOrder converts the submitted cart lines into an order. The total is
// the one the buyer saw at submission time and is stored as-is; a catalog
// price change between page load and checkout is deliberately not reflected.
// The submitted lines leave the buyer's cart and survive as order lines.
func CreateOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			Ref:      models.NewOrderRef(),
			UserID:   userID,
			Delivery: req.Delivery,
			Total:    req.Total,
			Status:   models.OrderStatusProcessing,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Connect the submitted item set, exactly that list, and clear the
		// originating cart association in the same write. The rows survive as
		// order lines.
		res := tx.Model(&models.Item{}).
			Where("id IN ? AND user_id = ?", req.Items, userID).
			Updates(map[string]interface{}{
				"order_id":     order.ID,
				"cart_user_id": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		// Every submitted id must resolve to a line owned by the caller,
		// otherwise the order would persist with missing or zero lines.
		if res.RowsAffected != int64(len(req.Items)) {
			return ErrItemsNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies an admin edit as one logical update: the status write
// plus the submitted line set, classified per line into create (no id,
// quantity > 0), update (id, quantity > 0), and delete (id, quantity 0).
// The status write is not validated against the current state; any status may
// follow any other. The first Completed or Cancelled write stamps CompletedAt;
// every other write leaves the column untouched so a stamp is never cleared
// or shifted.
func UpdateOrder(db *gorm.DB, orderID uint, req UpdateOrderRequest) (*models.Order, error) {
	status, err := mapOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, edit := range req.Items {
			switch {
			case edit.ID == 0 && edit.Quantity > 0:
				line := models.Item{
					ProductID: edit.ProductID,
					UserID:    order.UserID,
					OrderID:   &order.ID,
					Quantity:  edit.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			case edit.ID != 0 && edit.Quantity > 0:
				if err := tx.Model(&models.Item{}).Where("id = ? AND order_id = ?", edit.ID, order.ID).
					Updates(map[string]interface{}{
						"product_id": edit.ProductID,
						"quantity":   edit.Quantity,
					}).Error; err != nil {
					return err
				}
			case edit.ID != 0 && edit.Quantity == 0:
				if err := tx.Where("id = ? AND order_id = ?", edit.ID, order.ID).
					Delete(&models.Item{}).Error; err != nil {
					return err
				}
			}
		}

		updates := map[string]interface{}{
			"delivery": req.Delivery,
			"status":   status,
		}
		// Stamp once, on the first terminal write; a repeated terminal write
		// must not shift the completion time.
		if status.IsTerminal() && order.CompletedAt == nil {
			updates["completed_at"] = time.Now()
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			if errors.Is(err, ErrEmptyOrder) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
				return
			}
			if errors.Is(err, ErrItemsNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart items not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		broadcastOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// PUT /api/admin/orders/:orderID
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseID(c, "orderID")
		if !ok {
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := UpdateOrder(db, orderID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case err.Error() == "invalid order status":
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}

		broadcastOrder(*order)
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /api/admin/orders/:orderID
// Hard delete by admin action, distinct from cancellation.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseID(c, "orderID")
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.Item{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/admin/orders/:orderID — accepts the numeric id or the order ref.
// Refs are never purely numeric, so the param's shape decides which column to
// query; binding a ref string against the numeric id column would fail on
// postgres.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := c.Param("orderID")
		if param == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		query := db.Preload("User").Preload("Items.Product")
		if id, err := strconv.ParseUint(param, 10, 64); err == nil {
			query = query.Where("id = ?", uint(id))
		} else {
			query = query.Where("ref = ?", param)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
