package auditLogControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

// GET /audit-logs. Read-only; nothing writes this table through HTTP.
func GetAllAuditLogsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if action := c.Query("action"); action != "" {
			query = query.Where("action = ?", action)
		}
		if entityType := c.Query("entity_type"); entityType != "" {
			query = query.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entity_id"); entityID != "" {
			query = query.Where("entity_id = ?", entityID)
		}
		if actorID := c.Query("actor_id"); actorID != "" {
			query = query.Where("actor_id = ?", actorID)
		}
		if orderNumber := c.Query("order_number"); orderNumber != "" {
			query = query.Where("order_number = ?", orderNumber)
		}

		limit := 100
		if l := c.Query("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
				limit = parsed
			}
		}
		query = query.Limit(limit)

		var logs []models.AuditLog
		if err := query.Find(&logs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}
