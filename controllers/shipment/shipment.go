package shipmentControllers

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

type CreateShipmentRequest struct {
	OrderID         string     `json:"order_id" binding:"required"`
	Mode            string     `json:"mode"`
	Carrier         string     `json:"carrier"`
	TrackingNumber  string     `json:"tracking_number"`
	PortOfLoading   string     `json:"port_of_loading"`
	PortOfDischarge string     `json:"port_of_discharge"`
	ETD             *time.Time `json:"etd"`
	ETA             *time.Time `json:"eta"`
}

type UpdateShipmentRequest struct {
	Status          *string    `json:"status"`
	Mode            *string    `json:"mode"`
	Carrier         *string    `json:"carrier"`
	TrackingNumber  *string    `json:"tracking_number"`
	PortOfLoading   *string    `json:"port_of_loading"`
	PortOfDischarge *string    `json:"port_of_discharge"`
	ETD             *time.Time `json:"etd"`
	ETA             *time.Time `json:"eta"`
}

// CreateShipment assigns the next SH number and stores the shipment.
func CreateShipment(db *gorm.DB, req CreateShipmentRequest, actorID, actorName string) (models.Shipment, error) {
	if req.Mode != "" && !models.ValidShipmentMode(req.Mode) {
		return models.Shipment{}, errors.New("invalid shipment mode")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		return models.Shipment{}, err
	}

	number, err := sequence.Next(db, sequence.PrefixShipment, time.Now())
	if err != nil {
		return models.Shipment{}, err
	}

	shipment := models.Shipment{
		OrderID:         order.ID,
		ShipmentNumber:  number,
		Status:          models.ShipmentStatusPending,
		Carrier:         req.Carrier,
		TrackingNumber:  req.TrackingNumber,
		PortOfLoading:   req.PortOfLoading,
		PortOfDischarge: req.PortOfDischarge,
		ETD:             req.ETD,
		ETA:             req.ETA,
	}
	if req.Mode != "" {
		shipment.Mode = models.ShipmentMode(req.Mode)
	}
	if err := db.Create(&shipment).Error; err != nil {
		return models.Shipment{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:     models.ActionShipmentCreated,
		EntityType: "shipment",
		EntityID:   shipment.ID,
		ActorID:    actorID,
		ActorName:  actorName,
		NewValue:   shipment.ShipmentNumber,
	}))

	return shipment, nil
}

// -------- Handlers --------

// POST /shipments
func CreateShipmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShipmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := orderControllers.Actor(db, c)
		shipment, err := CreateShipment(db, req, actorID, actorName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, shipment)
	}
}

// GET /shipments
func GetAllShipmentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")

		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if mode := c.Query("mode"); mode != "" {
			query = query.Where("mode = ?", mode)
		}

		var shipments []models.Shipment
		if err := query.Find(&shipments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, shipments)
	}
}

// GET /shipments/:shipmentID
func GetShipmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.Preload("Order").First(&shipment, "id = ?", c.Param("shipmentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
			return
		}
		c.JSON(http.StatusOK, shipment)
	}
}

// PATCH /shipments/:shipmentID
func UpdateShipmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.First(&shipment, "id = ?", c.Param("shipmentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
			return
		}

		var req UpdateShipmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Status != nil {
			if !models.ValidShipmentStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipment status"})
				return
			}
			updates["status"] = *req.Status
			if models.ShipmentStatus(*req.Status) == models.ShipmentStatusDelivered && shipment.DeliveredAt == nil {
				now := time.Now()
				updates["delivered_at"] = &now
			}
		}
		if req.Mode != nil {
			if !models.ValidShipmentMode(*req.Mode) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipment mode"})
				return
			}
			updates["mode"] = *req.Mode
		}
		if req.Carrier != nil {
			updates["carrier"] = *req.Carrier
		}
		if req.TrackingNumber != nil {
			updates["tracking_number"] = *req.TrackingNumber
		}
		if req.PortOfLoading != nil {
			updates["port_of_loading"] = *req.PortOfLoading
		}
		if req.PortOfDischarge != nil {
			updates["port_of_discharge"] = *req.PortOfDischarge
		}
		if req.ETD != nil {
			updates["etd"] = *req.ETD
		}
		if req.ETA != nil {
			updates["eta"] = *req.ETA
		}

		if len(updates) > 0 {
			if err := db.Model(&shipment).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, shipment)
	}
}

// DELETE /shipments/:shipmentID
func DeleteShipmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment models.Shipment
		if err := db.First(&shipment, "id = ?", c.Param("shipmentID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shipment not found"})
			return
		}
		if err := db.Delete(&shipment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipment deleted"})
	}
}
