package routes

import (
	"github.com/gin-gonic/gin"
	productionControllers "github.com/provabook/provabook-api/controllers/production"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupProductionRoutes registers the "/production/*" endpoints.
func SetupProductionRoutes(api *gin.RouterGroup, db *gorm.DB) {
	production := api.Group("/production")
	production.Use(middleware.ValidateToken)
	{
		production.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), productionControllers.CreateProductionRecordHandler(db))
		production.GET("", productionControllers.GetAllProductionRecordsHandler(db))
		production.GET("/behind-target", productionControllers.GetBehindTargetHandler(db))
		production.GET("/:recordID", productionControllers.GetProductionRecordHandler(db))
		production.PATCH("/:recordID", middleware.RequireRoles("admin", "manager", "merchandiser"), productionControllers.UpdateProductionRecordHandler(db))
		production.DELETE("/:recordID", middleware.RequireRoles("admin", "manager"), productionControllers.DeleteProductionRecordHandler(db))
	}
}
