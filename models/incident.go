package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncidentType string
type IncidentStatus string
type IncidentSeverity string

const (
	IncidentTypeQuality  IncidentType = "quality"
	IncidentTypeDelay    IncidentType = "delay"
	IncidentTypeDocument IncidentType = "documentation"
	IncidentTypePayment  IncidentType = "payment"
	IncidentTypeOther    IncidentType = "other"

	IncidentStatusOpen       IncidentStatus = "open"
	IncidentStatusInProgress IncidentStatus = "in_progress"
	IncidentStatusResolved   IncidentStatus = "resolved"
	IncidentStatusClosed     IncidentStatus = "closed"

	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

type Incident struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	Type        IncidentType     `gorm:"type:VARCHAR(20);default:'other'" json:"type"`
	Status      IncidentStatus   `gorm:"type:VARCHAR(20);default:'open'" json:"status"`
	Severity    IncidentSeverity `gorm:"type:VARCHAR(10);default:'medium'" json:"severity"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `json:"description"`
	Resolution  string           `json:"resolution"`

	ReportedByID *string      `gorm:"size:36" json:"reported_by_id"`
	ReportedBy   *UserProfile `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`
	ResolvedAt   *time.Time   `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ValidIncidentType reports whether s is a known incident type.
func ValidIncidentType(s string) bool {
	switch IncidentType(s) {
	case IncidentTypeQuality, IncidentTypeDelay, IncidentTypeDocument, IncidentTypePayment, IncidentTypeOther:
		return true
	}
	return false
}

// ValidIncidentStatus reports whether s is a known incident status.
func ValidIncidentStatus(s string) bool {
	switch IncidentStatus(s) {
	case IncidentStatusOpen, IncidentStatusInProgress, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// ValidSeverity reports whether s is a known severity level.
func ValidSeverity(s string) bool {
	switch IncidentSeverity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
