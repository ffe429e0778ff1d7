package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	// ErrBackwardStage rejects moving an order to an earlier stage.
	ErrBackwardStage = errors.New("stage can only move forward")
)

type ChangeStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// ChangeStage moves an order forward through Design → In Development →
// Production → Delivered and recomputes the dashboard category. Entering
// Delivered stamps the actual delivery date, once.
func ChangeStage(db *gorm.DB, orderID, stage, actorID, actorName string) (models.Order, error) {
	if !models.ValidStage(stage) {
		return models.Order{}, ErrUnknownStage
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		newStage := models.OrderStage(stage)
		if !models.StageForward(order.CurrentStage, newStage) {
			return ErrBackwardStage
		}

		oldStage := order.CurrentStage
		updates := map[string]interface{}{
			"current_stage": newStage,
			"category":      models.CategoryForStage(newStage),
		}
		if newStage == models.StageDelivered && order.ActualDeliveryDate == nil {
			now := time.Now()
			updates["actual_delivery_date"] = &now
			order.ActualDeliveryDate = &now
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		order.CurrentStage = newStage
		order.Category = models.CategoryForStage(newStage)

		models.RecordAudit(tx, models.OrderAudit(&order, models.AuditLog{
			Action:    models.ActionStageChanged,
			ActorID:   actorID,
			ActorName: actorName,
			OldValue:  string(oldStage),
			NewValue:  stage,
		}))
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// PATCH /orders/:orderID/change-stage
func ChangeStageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangeStageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := Actor(db, c)
		order, err := ChangeStage(db, c.Param("orderID"), req.Stage, actorID, actorName)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, order)
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrUnknownStage), errors.Is(err, ErrBackwardStage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
