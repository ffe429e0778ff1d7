package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentStatus string
type ShipmentMode string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusCustoms   ShipmentStatus = "customs_clearance"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusDelayed   ShipmentStatus = "delayed"

	ShipmentModeAir     ShipmentMode = "air"
	ShipmentModeSea     ShipmentMode = "sea"
	ShipmentModeRoad    ShipmentMode = "road"
	ShipmentModeCourier ShipmentMode = "courier"
)

type Shipment struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	ShipmentNumber  string         `gorm:"uniqueIndex;not null" json:"shipment_number"`
	Status          ShipmentStatus `gorm:"type:VARCHAR(30);default:'pending'" json:"status"`
	Mode            ShipmentMode   `gorm:"type:VARCHAR(10);default:'sea'" json:"mode"`
	Carrier         string         `json:"carrier"`
	TrackingNumber  string         `json:"tracking_number"`
	PortOfLoading   string         `json:"port_of_loading"`
	PortOfDischarge string         `json:"port_of_discharge"`

	ETD         *time.Time `json:"etd"`
	ETA         *time.Time `json:"eta"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ValidShipmentStatus reports whether s names a known shipment status.
func ValidShipmentStatus(s string) bool {
	switch ShipmentStatus(s) {
	case ShipmentStatusPending, ShipmentStatusInTransit, ShipmentStatusCustoms,
		ShipmentStatusDelivered, ShipmentStatusDelayed:
		return true
	}
	return false
}

// ValidShipmentMode reports whether s names a known transport mode.
func ValidShipmentMode(s string) bool {
	switch ShipmentMode(s) {
	case ShipmentModeAir, ShipmentModeSea, ShipmentModeRoad, ShipmentModeCourier:
		return true
	}
	return false
}
