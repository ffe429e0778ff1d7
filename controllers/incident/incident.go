package incidentControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

// ErrBadIncidentInput flags a type, status or severity value outside the
// defined enums.
var ErrBadIncidentInput = errors.New("invalid incident input")

type CreateIncidentRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateIncidentRequest struct {
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Severity    *string `json:"severity"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Resolution  *string `json:"resolution"`
}

// CreateIncident records an incident against an existing order.
func CreateIncident(db *gorm.DB, req CreateIncidentRequest, actorID, actorName string) (models.Incident, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.Incident{}, err
	}

	incident := models.Incident{
		OrderID:     order.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.IncidentStatusOpen,
	}
	if req.Type != "" {
		if !models.ValidIncidentType(req.Type) {
			return models.Incident{}, ErrBadIncidentInput
		}
		incident.Type = models.IncidentType(req.Type)
	}
	if req.Severity != "" {
		if !models.ValidSeverity(req.Severity) {
			return models.Incident{}, ErrBadIncidentInput
		}
		incident.Severity = models.IncidentSeverity(req.Severity)
	}
	if actorID != "" {
		incident.ReportedByID = &actorID
	}
	if err := db.Create(&incident).Error; err != nil {
		return models.Incident{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionIncidentRaised,
		EntityType: "incident",
		EntityID:   incident.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   req.Title,
		Metadata:   models.JSONMap{"severity": string(incident.Severity)},
	}))

	return incident, nil
}

// -------- Handlers --------

// POST /incidents
func CreateIncidentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateIncidentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		incident, err := CreateIncident(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			if errors.Is(err, ErrBadIncidentInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, incident)
	}
}

// GET /incidents
func GetAllIncidentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if severity := c.Query("severity"); severity != "" {
			query = query.Where("severity = ?", severity)
		}
		if incidentType := c.Query("type"); incidentType != "" {
			query = query.Where("type = ?", incidentType)
		}

		var incidents []models.Incident
		if err := query.Find(&incidents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, incidents)
	}
}

// GET /incidents/critical. Open critical incidents across all orders
func GetCriticalIncidentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incidents []models.Incident
		if err := db.
			Where("severity = ? AND status IN ?", models.SeverityCritical,
				[]models.IncidentStatus{models.IncidentStatusOpen, models.IncidentStatusInProgress}).
			Order("created_at DESC").
			Find(&incidents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, incidents)
	}
}

// GET /incidents/:incidentID
func GetIncidentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incident models.Incident
		if err := db.Preload("Order").First(&incident, "id = ?", c.Param("incidentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
			return
		}
		c.JSON(http.StatusOK, incident)
	}
}

// PATCH /incidents/:incidentID
func UpdateIncidentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incident models.Incident
		if err := db.First(&incident, "id = ?", c.Param("incidentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
			return
		}

		var req UpdateIncidentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Type != nil {
			if !models.ValidIncidentType(*req.Type) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident type"})
				return
			}
			updates["type"] = *req.Type
		}
		if req.Severity != nil {
			if !models.ValidSeverity(*req.Severity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
				return
			}
			updates["severity"] = *req.Severity
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Resolution != nil {
			updates["resolution"] = *req.Resolution
		}
		if req.Status != nil {
			if !models.ValidIncidentStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident status"})
				return
			}
			updates["status"] = *req.Status
			if models.IncidentStatus(*req.Status) == models.IncidentStatusResolved && incident.ResolvedAt == nil {
				now := time.Now()
				updates["resolved_at"] = &now
			}
		}

		if len(updates) > 0 {
			if err := db.Model(&incident).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, incident)
	}
}

// DELETE /incidents/:incidentID
func DeleteIncidentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incident models.Incident
		if err := db.First(&incident, "id = ?", c.Param("incidentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
			return
		}
		if err := db.Delete(&incident).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Incident deleted"})
	}
}
