package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/provabook/provabook-api/controllers/order"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the "/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// ──────────────── Order CRUD ────────────────
		orders.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), orderControllers.CreateOrderHandler(db))
		orders.GET("", orderControllers.GetAllOrdersHandler(db))
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db))
		orders.PATCH("/:orderID", middleware.RequireRoles("admin", "manager", "merchandiser"), orderControllers.UpdateOrderHandler(db))
		orders.DELETE("/:orderID", middleware.RequireRoles("admin"), orderControllers.DeleteOrderHandler(db))

		// ──────────────── Approval Gate & Stage ────────────────
		orders.PATCH("/:orderID/approvals", middleware.RequireRoles("admin", "manager"), orderControllers.UpdateApprovalHandler(db))
		orders.PATCH("/:orderID/change-stage", middleware.RequireRoles("admin", "manager"), orderControllers.ChangeStageHandler(db))

		// ──────────────── Export ────────────────
		orders.GET("/export-excel", middleware.RequireRoles("admin", "manager"), orderControllers.ExportOrdersToExcel(db))
	}
}
