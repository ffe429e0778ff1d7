package notificationControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

type CreateNotificationRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	Type     string  `json:"type"`
	Priority string  `json:"priority"`
	Title    string  `json:"title" binding:"required"`
	Message  string  `json:"message"`
	OrderID  *string `json:"order_id"`
}

// CreateNotification stores a notification and pushes it to any connected
// dashboard clients.
func CreateNotification(db *gorm.DB, req CreateNotificationRequest) (models.Notification, error) {
	var user models.UserProfile
	if err := db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return models.Notification{}, err
	}

	n := models.Notification{
		UserID:  user.ID,
		Title:   req.Title,
		Message: req.Message,
		OrderID: req.OrderID,
	}
	if req.Type != "" {
		n.Type = models.NotificationType(req.Type)
	}
	if req.Priority != "" {
		n.Priority = models.NotificationPriority(req.Priority)
	}
	if err := db.Create(&n).Error; err != nil {
		return models.Notification{}, err
	}

	broadcastNotification(n)
	return n, nil
}

// MarkAsRead sets IsRead and ReadAt together; the pair never diverges.
func MarkAsRead(db *gorm.DB, id string) (models.Notification, error) {
	var n models.Notification
	if err := db.First(&n, "id = ?", id).Error; err != nil {
		return models.Notification{}, err
	}

	now := time.Now()
	if err := db.Model(&n).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": &now,
	}).Error; err != nil {
		return models.Notification{}, err
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

// MarkAllAsRead marks every unread notification of a user in one statement.
func MarkAllAsRead(db *gorm.DB, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		}).Error
}

// -------- Handlers --------

// POST /notifications
func CreateNotificationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		n, err := CreateNotification(db, req)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusCreated, n)
	}
}

// GET /notifications. The caller's notifications, newest first
func GetMyNotificationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		query := db.Where("user_id = ?", userID).Order("created_at DESC")
		if unread := c.Query("unread"); unread == "true" {
			query = query.Where("is_read = ?", false)
		}

		var notifications []models.Notification
		if err := query.Find(&notifications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

// GET /notifications/unread-count
func GetUnreadCountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var count int64
		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// PATCH /notifications/:notificationID/read
func MarkAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := MarkAsRead(db, c.Param("notificationID"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

// POST /notifications/read-all
func MarkAllAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		id, _ := userID.(string)

		if err := MarkAllAsRead(db, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
	}
}

// DELETE /notifications/:notificationID
func DeleteNotificationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var n models.Notification
		if err := db.First(&n, "id = ?", c.Param("notificationID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		if err := db.Delete(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
	}
}
