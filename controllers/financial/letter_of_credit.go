package financialControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

type CreateLCRequest struct {
	OrderID     string    `json:"order_id" binding:"required"`
	LCNumber    string    `json:"lc_number" binding:"required"`
	IssuingBank string    `json:"issuing_bank"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	IssueDate   time.Time `json:"issue_date" binding:"required"`
	ExpiryDate  time.Time `json:"expiry_date" binding:"required"`
}

type UpdateLCRequest struct {
	LCNumber    *string    `json:"lc_number"`
	IssuingBank *string    `json:"issuing_bank"`
	Amount      *float64   `json:"amount"`
	Currency    *string    `json:"currency"`
	Status      *string    `json:"status"`
	IssueDate   *time.Time `json:"issue_date"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// CreateLetterOfCredit stores an LC under an existing order.
func CreateLetterOfCredit(db *gorm.DB, req CreateLCRequest, actorID, actorName string) (models.LetterOfCredit, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.LetterOfCredit{}, err
	}

	lc := models.LetterOfCredit{
		OrderID:     order.ID,
		LCNumber:    req.LCNumber,
		IssuingBank: req.IssuingBank,
		Amount:      req.Amount,
		Status:      models.LCStatusPending,
		IssueDate:   req.IssueDate,
		ExpiryDate:  req.ExpiryDate,
	}
	if req.Currency != "" {
		lc.Currency = req.Currency
	}
	if actorID != "" {
		lc.CreatedByID = &actorID
	}
	if err := db.Create(&lc).Error; err != nil {
		return models.LetterOfCredit{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionLCCreated,
		EntityType: "letter_of_credit",
		EntityID:   lc.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   lc.LCNumber,
	}))

	return lc, nil
}

// ExpiringLCs returns received LCs whose expiry date falls within the next
// `days` days.
func ExpiringLCs(db *gorm.DB, days int) ([]models.LetterOfCredit, error) {
	threshold := time.Now().AddDate(0, 0, days)
	var lcs []models.LetterOfCredit
	err := db.
		Where("status = ? AND expiry_date < ?", models.LCStatusReceived, threshold).
		Order("expiry_date ASC").
		Find(&lcs).Error
	return lcs, err
}

// -------- Handlers --------

// POST /financials/letters-of-credit
func CreateLCHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLCRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		lc, err := CreateLetterOfCredit(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, lc)
	}
}

// GET /financials/letters-of-credit
func GetAllLCsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var lcs []models.LetterOfCredit
		if err := query.Find(&lcs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lcs)
	}
}

// GET /financials/letters-of-credit/expiring?days=30
func GetExpiringLCsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := 30
		if d := c.Query("days"); d != "" {
			parsed, err := strconv.Atoi(d)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
				return
			}
			days = parsed
		}

		lcs, err := ExpiringLCs(db, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lcs)
	}
}

// GET /financials/letters-of-credit/:lcID
func GetLCHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lc models.LetterOfCredit
		if err := db.Preload("Order").First(&lc, "id = ?", c.Param("lcID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter of credit not found"})
			return
		}
		c.JSON(http.StatusOK, lc)
	}
}

// PATCH /financials/letters-of-credit/:lcID
func UpdateLCHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lc models.LetterOfCredit
		if err := db.First(&lc, "id = ?", c.Param("lcID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter of credit not found"})
			return
		}

		var req UpdateLCRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.LCNumber != nil {
			updates["lc_number"] = *req.LCNumber
		}
		if req.IssuingBank != nil {
			updates["issuing_bank"] = *req.IssuingBank
		}
		if req.Amount != nil {
			updates["amount"] = *req.Amount
		}
		if req.Currency != nil {
			updates["currency"] = *req.Currency
		}
		if req.IssueDate != nil {
			updates["issue_date"] = *req.IssueDate
		}
		if req.ExpiryDate != nil {
			updates["expiry_date"] = *req.ExpiryDate
		}
		if req.Status != nil {
			if !models.ValidLCStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid LC status"})
				return
			}
			updates["status"] = *req.Status
		}

		if len(updates) > 0 {
			if err := db.Model(&lc).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, lc)
	}
}

// DELETE /financials/letters-of-credit/:lcID
func DeleteLCHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lc models.LetterOfCredit
		if err := db.First(&lc, "id = ?", c.Param("lcID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter of credit not found"})
			return
		}
		if err := db.Delete(&lc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Letter of credit deleted"})
	}
}
