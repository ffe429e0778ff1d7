package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/provabook/provabook-api/controllers/user"
	"github.com/provabook/provabook-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the "/users/*" endpoints. User management is an
// admin concern; listing is open to managers for merchandiser assignment.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("", middleware.RequireRoles("admin", "manager"), userControllers.GetAllUsersHandler(db))
		users.GET("/:userID", middleware.RequireRoles("admin", "manager"), userControllers.GetUserHandler(db))
		users.PATCH("/:userID", middleware.RequireRoles("admin"), userControllers.UpdateUserHandler(db))
		users.DELETE("/:userID", middleware.RequireRoles("admin"), userControllers.DeleteUserHandler(db))
	}
}
