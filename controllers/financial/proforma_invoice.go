package financialControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"github.com/provabook/provabook-api/sequence"
	"gorm.io/gorm"
)

type CreatePIRequest struct {
	OrderID   string     `json:"order_id" binding:"required"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Notes     string     `json:"notes"`
	IssueDate *time.Time `json:"issue_date"`
}

type UpdatePIRequest struct {
	Amount    *float64   `json:"amount"`
	Currency  *string    `json:"currency"`
	Notes     *string    `json:"notes"`
	IssueDate *time.Time `json:"issue_date"`
}

// CreateProformaInvoice assigns the next PI number and the next version for
// the order. Version assignment and insert share a transaction so two
// re-issues cannot claim the same version.
func CreateProformaInvoice(db *gorm.DB, req CreatePIRequest, actorID, actorName string) (models.ProformaInvoice, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.ProformaInvoice{}, err
	}

	number, err := sequence.Next(db, sequence.PrefixPI, time.Now())
	if err != nil {
		return models.ProformaInvoice{}, err
	}

	pi := models.ProformaInvoice{
		OrderID:   order.ID,
		PINumber:  number,
		Amount:    req.Amount,
		Notes:     req.Notes,
		IssueDate: req.IssueDate,
	}
	if req.Currency != "" {
		pi.Currency = req.Currency
	}
	if actorID != "" {
		pi.CreatedByID = &actorID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.ProformaInvoice{}).
			Where("order_id = ?", order.ID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		pi.Version = maxVersion + 1
		return tx.Create(&pi).Error
	})
	if err != nil {
		return models.ProformaInvoice{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionPICreated,
		EntityType: "proforma_invoice",
		EntityID:   pi.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   pi.PINumber,
	}))

	return pi, nil
}

// -------- Handlers --------

// POST /financials/proforma-invoices
func CreatePIHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		pi, err := CreateProformaInvoice(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, pi)
	}
}

// GET /financials/proforma-invoices
func GetAllPIsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}

		var pis []models.ProformaInvoice
		if err := query.Find(&pis).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, pis)
	}
}

// GET /financials/proforma-invoices/:piID
func GetPIHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pi models.ProformaInvoice
		if err := db.Preload("Order").First(&pi, "id = ?", c.Param("piID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proforma invoice not found"})
			return
		}
		c.JSON(http.StatusOK, pi)
	}
}

// PATCH /financials/proforma-invoices/:piID
func UpdatePIHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pi models.ProformaInvoice
		if err := db.First(&pi, "id = ?", c.Param("piID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proforma invoice not found"})
			return
		}

		var req UpdatePIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Amount != nil {
			updates["amount"] = *req.Amount
		}
		if req.Currency != nil {
			updates["currency"] = *req.Currency
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.IssueDate != nil {
			updates["issue_date"] = *req.IssueDate
		}

		if len(updates) > 0 {
			if err := db.Model(&pi).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, pi)
	}
}

// DELETE /financials/proforma-invoices/:piID
func DeletePIHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pi models.ProformaInvoice
		if err := db.First(&pi, "id = ?", c.Param("piID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proforma invoice not found"})
			return
		}
		if err := db.Delete(&pi).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Proforma invoice deleted"})
	}
}
