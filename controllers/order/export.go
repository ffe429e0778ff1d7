package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /orders/export-excel
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Merchandiser").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"OrderNumber", "Customer", "Buyer", "FabricType", "Quantity", "Unit",
			"Currency", "Value", "Status", "Stage", "Category", "Merchandiser",
			"ETD", "ETA", "ExpectedDelivery", "ActualDelivery", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		fmtDate := func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		}

		// Data rows
		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CustomerName)
			row.AddCell().SetValue(o.BuyerName)
			row.AddCell().SetValue(o.FabricType)
			row.AddCell().SetValue(o.Quantity)
			row.AddCell().SetValue(o.Unit)
			row.AddCell().SetValue(o.Currency)
			row.AddCell().SetValue(o.Value)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.CurrentStage))
			row.AddCell().SetValue(string(o.Category))
			if o.Merchandiser != nil {
				row.AddCell().SetValue(o.Merchandiser.FullName)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(fmtDate(o.ETD))
			row.AddCell().SetValue(fmtDate(o.ETA))
			row.AddCell().SetValue(fmtDate(o.ExpectedDeliveryDate))
			row.AddCell().SetValue(fmtDate(o.ActualDeliveryDate))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
