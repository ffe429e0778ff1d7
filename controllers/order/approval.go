package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

var (
	ErrUnknownGate = errors.New("unknown approval gate")
	ErrBadDecision = errors.New("invalid approval status")
	// ErrPrerequisitesIncomplete rejects a PP sample approval while any of
	// the four prerequisite gates is not yet approved.
	ErrPrerequisitesIncomplete = errors.New("pp sample cannot be approved until lab dip, strike off, quality test and bulk swatch are all approved")
)

type UpdateApprovalRequest struct {
	Key    string `json:"key" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateApproval sets one approval gate on an order. The dependent-gate rule
// is enforced here, not in the client: ppSample may only become approved once
// every prerequisite gate is approved. The read-modify-write runs inside a
// transaction so the map update and its audit entry commit together.
func UpdateApproval(db *gorm.DB, orderID, key, status, actorID, actorName string) (models.Order, error) {
	if !models.ValidGate(key) {
		return models.Order{}, ErrUnknownGate
	}
	if !models.ValidDecision(status) {
		return models.Order{}, ErrBadDecision
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		approvals := order.ApprovalStatus
		if approvals == nil {
			approvals = models.NewApprovalMap()
		}

		decision := models.ApprovalDecision(status)
		if key == models.GatePPSample && decision == models.ApprovalApproved && !approvals.PrerequisitesApproved() {
			return ErrPrerequisitesIncomplete
		}

		old := approvals[key]
		approvals[key] = decision
		if err := tx.Model(&order).Update("approval_status", approvals).Error; err != nil {
			return err
		}
		order.ApprovalStatus = approvals

		models.RecordAudit(tx, models.OrderAudit(&order, models.AuditLog{
			Action:    models.ActionApprovalChanged,
			ActorID:   actorID,
			ActorName: actorName,
			OldValue:  string(old),
			NewValue:  status,
			Metadata:  models.JSONMap{"gate": key},
		}))
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// PATCH /orders/:orderID/approvals
func UpdateApprovalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateApprovalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := Actor(db, c)
		order, err := UpdateApproval(db, c.Param("orderID"), req.Key, req.Status, actorID, actorName)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, order)
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrUnknownGate), errors.Is(err, ErrBadDecision), errors.Is(err, ErrPrerequisitesIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
