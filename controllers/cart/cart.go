package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product does not exist")
)

type UpdateItemInput struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"min=0"`
}

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutNowInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	Delivery  bool `json:"delivery"`
}

// UpdateItemQuantity sets a cart line's quantity, deleting the line when the
// quantity reaches 0. Returns the resulting quantity so the caller knows
// whether the line still exists. No upper bound is enforced here; the ten-item
// cap is a storefront-UI concern only.
func UpdateItemQuantity(db *gorm.DB, userID, itemID uint, quantity int) (int, error) {
	var item models.Item
	if err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}

	if quantity == 0 {
		if err := db.Delete(&item).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}

	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return 0, err
	}
	return quantity, nil
}

// CheckoutNow is the buy-it-now path: a cart insertion for the product
// followed immediately by an order referencing that single item. Both writes
// run in one transaction so a failed order creation cannot leave an orphaned
// cart line behind.
func CheckoutNow(db *gorm.DB, userID uint, input CheckoutNowInput) (*models.Order, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		item := models.Item{
			ProductID:  product.ID,
			UserID:     userID,
			CartUserID: &userID,
			Quantity:   input.Quantity,
			AddedAt:    time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		order = models.Order{
			Ref:      models.NewOrderRef(),
			UserID:   userID,
			Delivery: input.Delivery,
			Total:    product.Price * float64(input.Quantity),
			Status:   models.OrderStatusProcessing,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Connect the line to the order and take it out of the cart
		return tx.Model(&item).Updates(map[string]interface{}{
			"order_id":     order.ID,
			"cart_user_id": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/user/cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		quantity, err := UpdateItemQuantity(db, userID, input.ID, input.Quantity)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quantity": quantity})
	}
}

// POST /api/user/cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		// One cart line per product; adding again replaces the quantity
		var item models.Item
		err := db.Where("cart_user_id = ? AND product_id = ?", userID, input.ProductID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.Item{
				ProductID:  product.ID,
				UserID:     userID,
				CartUserID: &userID,
				Quantity:   input.Quantity,
				AddedAt:    time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, item)
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// POST /api/user/cart/checkout
func CheckoutNowHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input CheckoutNowInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CheckoutNow(db, userID, input)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var items []models.Item
		if err := db.Preload("Product").Where("cart_user_id = ?", userID).Order("added_at asc").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}
