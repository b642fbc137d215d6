package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
	"github.com/brownbean/coffeeshop-api/storage"
)

// UpdateProduct updates an existing product by ID. Accepts the same fields as
// CreateProduct; image uploads replace the stored assets for the product.
func UpdateProduct(db *gorm.DB, store *storage.Store, bucket string) gin.HandlerFunc {
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

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("price"); v != "" {
			price, parseErr := strconv.ParseFloat(v, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("available"); v != "" {
			available, parseErr := strconv.ParseBool(v)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid available flag"})
				return
			}
			product.Available = available
		}
		if v := c.PostForm("category_id"); v != "" {
			categoryID, parseErr := strconv.ParseUint(v, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			var category models.Category
			if err := db.First(&category, categoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}

		form, err := c.MultipartForm()
		if err == nil && len(form.File["images"]) > 0 {
			// Replace the whole asset prefix so indexes start clean
			if err := store.DeletePrefix(bucket, product.ID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to replace images"})
				return
			}
			for i, file := range form.File["images"] {
				diskPath, _, pathErr := store.Path(bucket, product.ID, i)
				if pathErr != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
					return
				}
				if err := c.SaveUploadedFile(file, diskPath); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
					return
				}
			}
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
