package routes

import (
	"github.com/gin-gonic/gin"
	incidentControllers "github.com/provabook/provabook-api/controllers/incident"
	shipmentControllers "github.com/provabook/provabook-api/controllers/shipment"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupShipmentRoutes registers the "/shipments/*" endpoints.
func SetupShipmentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	shipments := api.Group("/shipments")
	shipments.Use(middleware.ValidateToken)
	{
		shipments.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), shipmentControllers.CreateShipmentHandler(db))
		shipments.GET("", shipmentControllers.GetAllShipmentsHandler(db))
		shipments.GET("/:shipmentID", shipmentControllers.GetShipmentHandler(db))
		shipments.PATCH("/:shipmentID", middleware.RequireRoles("admin", "manager", "merchandiser"), shipmentControllers.UpdateShipmentHandler(db))
		shipments.DELETE("/:shipmentID", middleware.RequireRoles("admin", "manager"), shipmentControllers.DeleteShipmentHandler(db))
	}
}

// SetupIncidentRoutes registers the "/incidents/*" endpoints.
func SetupIncidentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	incidents := api.Group("/incidents")
	incidents.Use(middleware.ValidateToken)
	{
		incidents.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), incidentControllers.CreateIncidentHandler(db))
		incidents.GET("", incidentControllers.GetAllIncidentsHandler(db))
		incidents.GET("/critical", incidentControllers.GetCriticalIncidentsHandler(db))
		incidents.GET("/:incidentID", incidentControllers.GetIncidentHandler(db))
		incidents.PATCH("/:incidentID", middleware.RequireRoles("admin", "manager", "merchandiser"), incidentControllers.UpdateIncidentHandler(db))
		incidents.DELETE("/:incidentID", middleware.RequireRoles("admin", "manager"), incidentControllers.DeleteIncidentHandler(db))
	}
}
