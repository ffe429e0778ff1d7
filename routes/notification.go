package routes

import (
	"github.com/gin-gonic/gin"
	auditLogControllers "github.com/provabook/provabook-api/controllers/auditlog"
	dashboardControllers "github.com/provabook/provabook-api/controllers/dashboard"
	documentControllers "github.com/provabook/provabook-api/controllers/document"
	notificationControllers "github.com/provabook/provabook-api/controllers/notification"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupNotificationRoutes registers the "/notifications/*" endpoints.
func SetupNotificationRoutes(api *gin.RouterGroup, db *gorm.DB) {
	notifications := api.Group("/notifications")
	notifications.Use(middleware.ValidateToken)
	{
		notifications.POST("", middleware.RequireRoles("admin", "manager"), notificationControllers.CreateNotificationHandler(db))
		notifications.GET("", notificationControllers.GetMyNotificationsHandler(db))
		notifications.GET("/unread-count", notificationControllers.GetUnreadCountHandler(db))

		// websocket feed for live dashboard updates
		notifications.GET("/ws", notificationControllers.NotificationWebSocketHandler)

		notifications.PATCH("/:notificationID/read", notificationControllers.MarkAsReadHandler(db))
		notifications.POST("/read-all", notificationControllers.MarkAllAsReadHandler(db))
		notifications.DELETE("/:notificationID", notificationControllers.DeleteNotificationHandler(db))
	}
}

// SetupDocumentRoutes registers the "/documents/*" endpoints.
func SetupDocumentRoutes(api *gin.RouterGroup, db *gorm.DB, uploadDir string) {
	documents := api.Group("/documents")
	documents.Use(middleware.ValidateToken)
	{
		documents.POST("", middleware.RequireRoles("admin", "manager", "merchandiser"), documentControllers.UploadDocumentHandler(db, uploadDir))
		documents.GET("", documentControllers.GetAllDocumentsHandler(db))
		documents.GET("/:documentID", documentControllers.GetDocumentHandler(db))
		documents.DELETE("/:documentID", middleware.RequireRoles("admin", "manager"), documentControllers.DeleteDocumentHandler(db, uploadDir))
	}
}

// SetupAuditLogRoutes registers the "/audit-logs" endpoints.
func SetupAuditLogRoutes(api *gin.RouterGroup, db *gorm.DB) {
	auditLogs := api.Group("/audit-logs")
	auditLogs.Use(middleware.ValidateToken)
	{
		auditLogs.GET("", middleware.RequireRoles("admin", "manager"), auditLogControllers.GetAllAuditLogsHandler(db))
	}
}

// SetupDashboardRoutes registers the "/dashboard" endpoints.
func SetupDashboardRoutes(api *gin.RouterGroup, db *gorm.DB) {
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.ValidateToken)
	{
		dashboard.GET("/summary", dashboardControllers.GetSummaryHandler(db))
	}
}
