package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"github.com/provabook/provabook-api/sequence"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	CustomerName      string     `json:"customer_name" binding:"required"`
	BuyerName         string     `json:"buyer_name"`
	FabricType        string     `json:"fabric_type"`
	FabricComposition string     `json:"fabric_composition"`
	Quantity          int        `json:"quantity"`
	Unit              string     `json:"unit"`
	Currency          string     `json:"currency"`
	Value             float64    `json:"value"`
	OrderDate         *time.Time `json:"order_date"`
	ETD               *time.Time `json:"etd"`
	ETA               *time.Time `json:"eta"`
	ExpectedDelivery  *time.Time `json:"expected_delivery_date"`
	MerchandiserID    *string    `json:"merchandiser_id"`
}

type UpdateOrderRequest struct {
	CustomerName      *string    `json:"customer_name"`
	BuyerName         *string    `json:"buyer_name"`
	FabricType        *string    `json:"fabric_type"`
	FabricComposition *string    `json:"fabric_composition"`
	Quantity          *int       `json:"quantity"`
	Unit              *string    `json:"unit"`
	Currency          *string    `json:"currency"`
	Value             *float64   `json:"value"`
	OrderDate         *time.Time `json:"order_date"`
	ETD               *time.Time `json:"etd"`
	ETA               *time.Time `json:"eta"`
	ExpectedDelivery  *time.Time `json:"expected_delivery_date"`
	Status            *string    `json:"status"`
	MerchandiserID    *string    `json:"merchandiser_id"`
}

// -------- Core Logic --------

// CreateOrder assigns the next PB number and stores the order with every
// approval gate pending.
func CreateOrder(db *gorm.DB, req CreateOrderRequest, actorID, actorName string) (models.Order, error) {
	number, err := sequence.Next(db, sequence.PrefixOrder, time.Now())
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		OrderNumber:          number,
		CustomerName:         req.CustomerName,
		BuyerName:            req.BuyerName,
		FabricType:           req.FabricType,
		FabricComposition:    req.FabricComposition,
		Quantity:             req.Quantity,
		Currency:             req.Currency,
		Value:                req.Value,
		OrderDate:            req.OrderDate,
		ETD:                  req.ETD,
		ETA:                  req.ETA,
		ExpectedDeliveryDate: req.ExpectedDelivery,
		MerchandiserID:       req.MerchandiserID,
		Status:               models.OrderStatusPending,
		CurrentStage:         models.StageDesign,
		Category:             models.CategoryUpcoming,
		ApprovalStatus:       models.NewApprovalMap(),
	}
	if req.Unit != "" {
		order.Unit = req.Unit
	}
	if err := db.Create(&order).Error; err != nil {
		return models.Order{}, err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:    models.ActionOrderCreated,
		ActorID:   actorID,
		ActorName: actorName,
		NewValue:  order.OrderNumber,
	}))

	return order, nil
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorID, actorName := Actor(db, c)
		order, err := CreateOrder(db, req, actorID, actorName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Merchandiser").Order("created_at DESC")

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if stage := c.Query("stage"); stage != "" {
			query = query.Where("current_stage = ?", stage)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if merchandiser := c.Query("merchandiser_id"); merchandiser != "" {
			query = query.Where("merchandiser_id = ?", merchandiser)
		}
		if customer := c.Query("customer"); customer != "" {
			query = query.Where("customer_name LIKE ?", "%"+customer+"%")
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		err := db.
			Preload("Merchandiser").
			Preload("Samples").
			Preload("ProformaInvoices").
			Preload("LettersOfCredit").
			Preload("Incidents").
			Preload("Shipments").
			Preload("Documents").
			Preload("ProductionRecords").
			First(&order, "id = ?", c.Param("orderID")).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PATCH /orders/:orderID
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.CustomerName != nil {
			updates["customer_name"] = *req.CustomerName
		}
		if req.BuyerName != nil {
			updates["buyer_name"] = *req.BuyerName
		}
		if req.FabricType != nil {
			updates["fabric_type"] = *req.FabricType
		}
		if req.FabricComposition != nil {
			updates["fabric_composition"] = *req.FabricComposition
		}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.Unit != nil {
			updates["unit"] = *req.Unit
		}
		if req.Currency != nil {
			updates["currency"] = *req.Currency
		}
		if req.Value != nil {
			updates["value"] = *req.Value
		}
		if req.OrderDate != nil {
			updates["order_date"] = *req.OrderDate
		}
		if req.ETD != nil {
			updates["etd"] = *req.ETD
		}
		if req.ETA != nil {
			updates["eta"] = *req.ETA
		}
		if req.ExpectedDelivery != nil {
			updates["expected_delivery_date"] = *req.ExpectedDelivery
		}
		if req.MerchandiserID != nil {
			updates["merchandiser_id"] = *req.MerchandiserID
		}
		if req.Status != nil {
			switch models.OrderStatus(*req.Status) {
			case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusInProgress,
				models.OrderStatusOnHold, models.OrderStatusCompleted, models.OrderStatusCancelled:
				updates["status"] = *req.Status
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
		}

		if len(updates) > 0 {
			if err := db.Model(&order).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			actorID, actorName := Actor(db, c)
			models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
				Action:    models.ActionOrderUpdated,
				ActorID:   actorID,
				ActorName: actorName,
			}))
		}

		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrder hard-deletes an order and all of its children. The children
// carry ON DELETE CASCADE constraints; the association Select also covers
// databases migrated without foreign-key support.
func DeleteOrder(db *gorm.DB, orderID, actorID, actorName string) error {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		return err
	}

	if err := db.Select("Samples", "ProformaInvoices", "LettersOfCredit", "Incidents", "Shipments", "Documents", "ProductionRecords").
		Delete(&order).Error; err != nil {
		return err
	}

	models.RecordAudit(db, models.OrderAudit(&order, models.AuditLog{
		Action:    models.ActionOrderDeleted,
		ActorID:   actorID,
		ActorName: actorName,
		OldValue:  order.OrderNumber,
	}))
	return nil
}

// DELETE /orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, actorName := Actor(db, c)
		if err := DeleteOrder(db, c.Param("orderID"), actorID, actorName); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}

// Actor resolves the authenticated caller's id and display name for audit
// entries. The name lookup is best-effort.
func Actor(db *gorm.DB, c *gin.Context) (string, string) {
	v, _ := c.Get("user_id")
	id, _ := v.(string)
	if id == "" {
		return "", ""
	}
	var user models.UserProfile
	if err := db.Select("full_name").First(&user, "id = ?", id).Error; err != nil {
		return id, ""
	}
	return id, user.FullName
}
