package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
	"github.com/brownbean/coffeeshop-api/storage"
)

// DeleteProduct removes the product row and its whole image prefix. Item rows
// referencing the product go with it via the FK cascade.
func DeleteProduct(db *gorm.DB, store *storage.Store, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		if err := store.DeletePrefix(bucket, product.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product images"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
