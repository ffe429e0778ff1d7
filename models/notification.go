package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string
type NotificationPriority string

const (
	NotificationTypeOrder    NotificationType = "order"
	NotificationTypeSample   NotificationType = "sample"
	NotificationTypeFinance  NotificationType = "finance"
	NotificationTypeShipment NotificationType = "shipment"
	NotificationTypeIncident NotificationType = "incident"
	NotificationTypeSystem   NotificationType = "system"

	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID     string       `gorm:"primaryKey;size:36" json:"id"`
	UserID string       `gorm:"size:36;not null;index" json:"user_id"`
	User   *UserProfile `gorm:"foreignKey:UserID" json:"-"`

	Type     NotificationType     `gorm:"type:VARCHAR(20);default:'system'" json:"type"`
	Priority NotificationPriority `gorm:"type:VARCHAR(10);default:'normal'" json:"priority"`
	Title    string               `gorm:"not null" json:"title"`
	Message  string               `json:"message"`
	OrderID  *string              `gorm:"size:36" json:"order_id"`

	// IsRead and ReadAt are only ever written together.
	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
