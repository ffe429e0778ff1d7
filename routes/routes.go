package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires every route group under
// the configurable API prefix (default "api/v1").
func SetupRoutes(r *gin.Engine, db *gorm.DB, uploadDir string) {
	prefix := os.Getenv("API_PREFIX")
	if prefix == "" {
		prefix = "api/v1"
	}
	api := r.Group("/" + prefix)

	// Public auth routes plus the JWT-protected profile endpoint
	SetupAuthRoutes(api, db)

	// Resource routes (all JWT-protected)
	SetupUserRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupSampleRoutes(api, db)
	SetupFinancialRoutes(api, db)
	SetupIncidentRoutes(api, db)
	SetupShipmentRoutes(api, db)
	SetupProductionRoutes(api, db)
	SetupNotificationRoutes(api, db)
	SetupDocumentRoutes(api, db, uploadDir)
	SetupAuditLogRoutes(api, db)
	SetupDashboardRoutes(api, db)
}
