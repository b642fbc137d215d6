package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/brownbean/coffeeshop-api/models"
)

// ImportProductsFromExcel upserts products from an uploaded sheet. Rows with
// an ID update that product, rows without create a new one; rows missing a
// name, price, or a known category are skipped.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			description := get(2)
			price, err1 := strconv.ParseFloat(get(3), 64)
			available := true
			if v := get(4); v != "" {
				if parsed, parseErr := strconv.ParseBool(v); parseErr == nil {
					available = parsed
				}
			}
			categoryID, err2 := strconv.ParseUint(get(5), 10, 64)

			if name == "" || err1 != nil || err2 != nil {
				skippedCount++
				continue
			}

			var category models.Category
			if err := db.First(&category, categoryID).Error; err != nil {
				skippedCount++
				continue
			}

			if idStr != "" {
				id, parseErr := strconv.ParseUint(idStr, 10, 64)
				if parseErr != nil {
					skippedCount++
					continue
				}

				var product models.Product
				if err := db.First(&product, id).Error; err != nil {
					skippedCount++
					continue
				}

				product.Name = name
				product.Description = description
				product.Price = price
				product.Available = available
				product.CategoryID = category.ID
				if err := db.Save(&product).Error; err != nil {
					skippedCount++
					continue
				}
				updatedCount++
				continue
			}

			product := models.Product{
				Name:        name,
				Description: description,
				Price:       price,
				Available:   available,
				CategoryID:  category.ID,
			}
			if err := db.Create(&product).Error; err != nil {
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}
