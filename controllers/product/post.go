package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
	"github.com/brownbean/coffeeshop-api/storage"
)

// CreateProduct creates a new product with its category and image uploads.
// Images are stored as {bucket}/{productID}/{index}.jpg.
func CreateProduct(db *gorm.DB, store *storage.Store, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		categoryIDStr := c.PostForm("category_id")
		if name == "" || priceStr == "" || categoryIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and category_id are required"})
			return
		}

		description := c.PostForm("description")

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}

		available := true
		if v := c.PostForm("available"); v != "" {
			if parsed, parseErr := strconv.ParseBool(v); parseErr == nil {
				available = parsed
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid available flag"})
				return
			}
		}

		var category models.Category
		if err := db.First(&category, categoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		product := models.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Available:   available,
			CategoryID:  category.ID,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		// Image uploads, indexed in submission order
		form, err := c.MultipartForm()
		if err == nil {
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

		c.JSON(http.StatusCreated, product)
	}
}
