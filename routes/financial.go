package routes

import (
	"github.com/gin-gonic/gin"
	financialControllers "github.com/provabook/provabook-api/controllers/financial"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupFinancialRoutes registers the "/financials/*" endpoints for proforma
// invoices and letters of credit.
func SetupFinancialRoutes(api *gin.RouterGroup, db *gorm.DB) {
	financials := api.Group("/financials")
	financials.Use(middleware.ValidateToken)
	{
		// ──────────────── Proforma Invoices ────────────────
		pis := financials.Group("/proforma-invoices")
		{
			pis.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), financialControllers.CreatePIHandler(db))
			pis.GET("", financialControllers.GetAllPIsHandler(db))
			pis.GET("/:piID", financialControllers.GetPIHandler(db))
			pis.PATCH("/:piID", middleware.RequireRoles("admin", "manager"), financialControllers.UpdatePIHandler(db))
			pis.DELETE("/:piID", middleware.RequireRoles("admin"), financialControllers.DeletePIHandler(db))
		}

		// ──────────────── Letters of Credit ────────────────
		lcs := financials.Group("/letters-of-credit")
		{
			lcs.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), financialControllers.CreateLCHandler(db))
			lcs.GET("", financialControllers.GetAllLCsHandler(db))
			lcs.GET("/expiring", financialControllers.GetExpiringLCsHandler(db))
			lcs.GET("/:lcID", financialControllers.GetLCHandler(db))
			lcs.PATCH("/:lcID", middleware.RequireRoles("admin", "manager"), financialControllers.UpdateLCHandler(db))
			lcs.DELETE("/:lcID", middleware.RequireRoles("admin"), financialControllers.DeleteLCHandler(db))
		}
	}
}
