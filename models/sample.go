package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SampleType string
type SampleStatus string

const (
	SampleTypeLabDip       SampleType = "lab_dip"
	SampleTypeHandLoom     SampleType = "hand_loom"
	SampleTypeStrikeOff    SampleType = "strike_off"
	SampleTypePresentation SampleType = "presentation"
	SampleTypePP           SampleType = "pp"

	SampleStatusPending      SampleStatus = "pending"
	SampleStatusSubmitted    SampleStatus = "submitted"
	SampleStatusInTransit    SampleStatus = "in_transit"
	SampleStatusReceived     SampleStatus = "received"
	SampleStatusApproved     SampleStatus = "approved"
	SampleStatusRejected     SampleStatus = "rejected"
	SampleStatusResubmission SampleStatus = "resubmission_required"
)

type Sample struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	Type        SampleType   `gorm:"type:VARCHAR(20);not null" json:"type"`
	Status      SampleStatus `gorm:"type:VARCHAR(30);default:'pending'" json:"status"`
	Description string       `json:"description"`
	CourierName string       `json:"courier_name"`
	TrackingRef string       `json:"tracking_ref"`

	SubmittedDate *time.Time `json:"submitted_date"`
	ReceivedDate  *time.Time `json:"received_date"`
	DecisionDate  *time.Time `json:"decision_date"`

	// Resubmission plan, derived server-side: the flag flips to true only
	// when a rejected sample gets both a responsible person and a target
	// date on the same update.
	ResponsiblePerson      string     `json:"responsible_person"`
	ResubmissionTargetDate *time.Time `json:"resubmission_target_date"`
	ResubmissionPlanSet    bool       `gorm:"default:false" json:"resubmission_plan_set"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Sample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ValidSampleType reports whether s names a known sample type.
func ValidSampleType(s string) bool {
	switch SampleType(s) {
	case SampleTypeLabDip, SampleTypeHandLoom, SampleTypeStrikeOff, SampleTypePresentation, SampleTypePP:
		return true
	}
	return false
}

// ValidSampleStatus reports whether s names a known sample status.
func ValidSampleStatus(s string) bool {
	switch SampleStatus(s) {
	case SampleStatusPending, SampleStatusSubmitted, SampleStatusInTransit,
		SampleStatusReceived, SampleStatusApproved, SampleStatusRejected,
		SampleStatusResubmission:
		return true
	}
	return false
}
