package sampleControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

type CreateSampleRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	CourierName string `json:"courier_name"`
	TrackingRef string `json:"tracking_ref"`
}

type UpdateSampleRequest struct {
	Status                 *string    `json:"status"`
	Description            *string    `json:"description"`
	CourierName            *string    `json:"courier_name"`
	TrackingRef            *string    `json:"tracking_ref"`
	SubmittedDate          *time.Time `json:"submitted_date"`
	ReceivedDate           *time.Time `json:"received_date"`
	DecisionDate           *time.Time `json:"decision_date"`
	ResponsiblePerson      *string    `json:"responsible_person"`
	ResubmissionTargetDate *time.Time `json:"resubmission_target_date"`
}

// CreateSample stores a sample under an existing order.
func CreateSample(db *gorm.DB, req CreateSampleRequest, actorID, actorName string) (models.Sample, error) {
	if !models.ValidSampleType(req.Type) {
		return models.Sample{}, errors.New("invalid sample type")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.Sample{}, err
	}

	sample := models.Sample{
		OrderID:     order.ID,
		Type:        models.SampleType(req.Type),
		Status:      models.SampleStatusPending,
		Description: req.Description,
		CourierName: req.CourierName,
		TrackingRef: req.TrackingRef,
	}
	if err := db.Create(&sample).Error; err != nil {
		return models.Sample{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionSampleCreated,
		EntityType: "sample",
		EntityID:   sample.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   req.Type,
	}))

	return sample, nil
}

// UpdateSample applies a partial update and derives the resubmission flag:
// it flips to true only when the sample is rejected and both the responsible
// person and the target date arrive on this same update. The flag is never
// taken from the client.
func UpdateSample(db *gorm.DB, id string, req UpdateSampleRequest, actorID, actorName string) (models.Sample, error) {
	var sample models.Sample
	if err := db.First(&sample, "id = ?", id).Error; err != nil {
		return models.Sample{}, err
	}
	oldStatus := sample.Status

	updates := make(map[string]interface{})
	if req.Status != nil {
		if !models.ValidSampleStatus(*req.Status) {
			return models.Sample{}, errors.New("invalid sample status")
		}
		updates["status"] = *req.Status
		sample.Status = models.SampleStatus(*req.Status)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CourierName != nil {
		updates["courier_name"] = *req.CourierName
	}
	if req.TrackingRef != nil {
		updates["tracking_ref"] = *req.TrackingRef
	}
	if req.SubmittedDate != nil {
		updates["submitted_date"] = *req.SubmittedDate
	}
	if req.ReceivedDate != nil {
		updates["received_date"] = *req.ReceivedDate
	}
	if req.DecisionDate != nil {
		updates["decision_date"] = *req.DecisionDate
	}
	if req.ResponsiblePerson != nil {
		updates["responsible_person"] = *req.ResponsiblePerson
	}
	if req.ResubmissionTargetDate != nil {
		updates["resubmission_target_date"] = *req.ResubmissionTargetDate
	}

	if sample.Status == models.SampleStatusRejected &&
		req.ResponsiblePerson != nil && *req.ResponsiblePerson != "" &&
		req.ResubmissionTargetDate != nil {
		updates["resubmission_plan_set"] = true
	}

	if len(updates) > 0 {
		if err := db.Model(&sample).Updates(updates).Error; err != nil {
			return models.Sample{}, err
		}

		var order models.Order
		if err := db.First(&order, "id = ?", sample.OrderID).Error; err == nil {
			models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
				Action:     models.ActionSampleUpdated,
				EntityType: "sample",
				EntityID:   sample.ID,
				ActorID:    actorID,
				ActorName:  actorName,
				OldValue:   string(oldStatus),
				NewValue:   string(sample.Status),
			}))
		}
	}

	if err := db.First(&sample, "id = ?", id).Error; err != nil {
		return models.Sample{}, err
	}
	return sample, nil
}

// -------- Handlers --------

// POST /samples
func CreateSampleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		sample, err := CreateSample(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, sample)
	}
}

// GET /samples
func GetAllSamplesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if sampleType := c.Query("type"); sampleType != "" {
			query = query.Where("type = ?", sampleType)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var samples []models.Sample
		if err := query.Find(&samples).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, samples)
	}
}

// GET /samples/pending-resubmission. Rejected samples still without a plan
func GetPendingResubmissionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var samples []models.Sample
		if err := db.
			Where("status = ? AND resubmission_plan_set = ?", models.SampleStatusRejected, false).
			Order("created_at DESC").
			Find(&samples).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, samples)
	}
}

// GET /samples/:sampleID
func GetSampleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sample models.Sample
		if err := db.Preload("Order").First(&sample, "id = ?", c.Param("sampleID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
			return
		}
		c.JSON(http.StatusOK, sample)
	}
}

// PATCH /samples/:sampleID
func UpdateSampleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		sample, err := UpdateSample(db, c.Param("sampleID"), req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sample)
	}
}

// DELETE /samples/:sampleID
func DeleteSampleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sample models.Sample
		if err := db.First(&sample, "id = ?", c.Param("sampleID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
			return
		}
		if err := db.Delete(&sample).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sample deleted"})
	}
}
