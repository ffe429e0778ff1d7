package productionControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

// ErrBadProductionInput flags a process value outside the defined steps.
var ErrBadProductionInput = errors.New("invalid production input")

type CreateProductionRecordRequest struct {
	OrderID          string     `json:"order_id" binding:"required"`
	Process          string     `json:"process"`
	ProductionDate   *time.Time `json:"production_date"`
	QuantityProduced int        `json:"quantity_produced"`
	QuantityTarget   int        `json:"quantity_target"`
	DefectCount      int        `json:"defect_count"`
	Remarks          string     `json:"remarks"`
}

type UpdateProductionRecordRequest struct {
	Process          *string    `json:"process"`
	ProductionDate   *time.Time `json:"production_date"`
	QuantityProduced *int       `json:"quantity_produced"`
	QuantityTarget   *int       `json:"quantity_target"`
	DefectCount      *int       `json:"defect_count"`
	Remarks          *string    `json:"remarks"`
}

// CreateProductionRecord stores a factory output snapshot against an
// existing order.
func CreateProductionRecord(db *gorm.DB, req CreateProductionRecordRequest, actorID, actorName string) (models.ProductionRecord, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.ProductionRecord{}, err
	}

	record := models.ProductionRecord{
		OrderID:          order.ID,
		ProductionDate:   req.ProductionDate,
		QuantityProduced: req.QuantityProduced,
		QuantityTarget:   req.QuantityTarget,
		DefectCount:      req.DefectCount,
		Remarks:          req.Remarks,
	}
	if req.Process != "" {
		if !models.ValidProductionProcess(req.Process) {
			return models.ProductionRecord{}, ErrBadProductionInput
		}
		record.Process = models.ProductionProcess(req.Process)
	}
	if actorID != "" {
		record.RecordedByID = &actorID
	}
	if err := db.Create(&record).Error; err != nil {
		return models.ProductionRecord{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionProductionAdded,
		EntityType: "production_record",
		EntityID:   record.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   string(record.Process),
	}))

	return record, nil
}

// -------- Handlers --------

// POST /production
func CreateProductionRecordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductionRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		record, err := CreateProductionRecord(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			if errors.Is(err, ErrBadProductionInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, record)
	}
}

// GET /production
func GetAllProductionRecordsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if process := c.Query("process"); process != "" {
			query = query.Where("process = ?", process)
		}

		var records []models.ProductionRecord
		if err := query.Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// GET /production/behind-target. Records whose output has not reached the
// target quantity
func GetBehindTargetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []models.ProductionRecord
		if err := db.
			Where("quantity_target > 0 AND quantity_produced < quantity_target").
			Order("created_at DESC").
			Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// GET /production/:recordID
func GetProductionRecordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.ProductionRecord
		if err := db.Preload("Order").First(&record, "id = ?", c.Param("recordID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production record not found"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// PATCH /production/:recordID
func UpdateProductionRecordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.ProductionRecord
		if err := db.First(&record, "id = ?", c.Param("recordID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production record not found"})
			return
		}

		var req UpdateProductionRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Process != nil {
			if !models.ValidProductionProcess(*req.Process) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid production process"})
				return
			}
			updates["process"] = *req.Process
		}
		if req.ProductionDate != nil {
			updates["production_date"] = *req.ProductionDate
		}
		if req.QuantityProduced != nil {
			updates["quantity_produced"] = *req.QuantityProduced
		}
		if req.QuantityTarget != nil {
			updates["quantity_target"] = *req.QuantityTarget
		}
		if req.DefectCount != nil {
			updates["defect_count"] = *req.DefectCount
		}
		if req.Remarks != nil {
			updates["remarks"] = *req.Remarks
		}

		if len(updates) > 0 {
			if err := db.Model(&record).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, record)
	}
}

// DELETE /production/:recordID
func DeleteProductionRecordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record models.ProductionRecord
		if err := db.First(&record, "id = ?", c.Param("recordID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Production record not found"})
			return
		}
		if err := db.Delete(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Production record deleted"})
	}
}
