package routes

import (
	"github.com/gin-gonic/gin"
	sampleControllers "github.com/provabook/provabook-api/controllers/sample"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupSampleRoutes registers the "/samples/*" endpoints.
func SetupSampleRoutes(api *gin.RouterGroup, db *gorm.DB) {
	samples := api.Group("/samples")
	samples.Use(middleware.ValidateToken)
	{
		samples.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), sampleControllers.CreateSampleHandler(db))
		samples.GET("", sampleControllers.GetAllSamplesHandler(db))
		samples.GET("/pending-resubmission", sampleControllers.GetPendingResubmissionHandler(db))
		samples.GET("/:sampleID", sampleControllers.GetSampleHandler(db))
		samples.PATCH("/:sampleID", middleware.RequireRoles("admin", "manager", "merchandiser"), sampleControllers.UpdateSampleHandler(db))
		samples.DELETE("/:sampleID", middleware.RequireRoles("admin", "manager"), sampleControllers.DeleteSampleHandler(db))
	}
}
