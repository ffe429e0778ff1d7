package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/auth"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", auth.LoginHandler(db))

		// Account creation is an admin action, not self-service
		authGroup.POST("/register",
			middleware.ValidateToken,
			middleware.RequireRoles("admin"),
			auth.RegisterHandler(db))

		authGroup.GET("/me", middleware.ValidateToken, auth.MeHandler(db))
	}
}
