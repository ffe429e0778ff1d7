package models

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit action codes. The dashboard renders these through a template table;
// anything it does not recognize passes through verbatim.
const (
	ActionOrderCreated    = "order_created"
	ActionOrderUpdated    = "order_updated"
	ActionOrderDeleted    = "order_deleted"
	ActionApprovalChanged = "approval_changed"
	ActionStageChanged    = "stage_changed"
	ActionSampleCreated   = "sample_created"
	ActionSampleUpdated   = "sample_updated"
	ActionPICreated       = "pi_created"
	ActionLCCreated       = "lc_created"
	ActionShipmentCreated = "shipment_created"
	ActionProductionAdded = "production_recorded"
	ActionIncidentRaised  = "incident_raised"
	ActionDocumentAdded   = "document_added"
	ActionDocumentRemoved = "document_removed"
)

// AuditLog is append-only: nothing in the normal flows updates or deletes a
// row. Order fields are denormalized so the activity feed renders without a
// join, and MerchandiserID is a real column so the merchandiser dashboard
// filters without reaching into the metadata JSON.
type AuditLog struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Action     string `gorm:"not null;index" json:"action"`
	EntityType string `gorm:"index" json:"entity_type"`
	EntityID   string `gorm:"size:36" json:"entity_id"`

	ActorID   string `gorm:"size:36" json:"actor_id"`
	ActorName string `json:"actor_name"`

	OrderNumber    string  `json:"order_number"`
	CustomerName   string  `json:"customer_name"`
	BuyerName      string  `json:"buyer_name"`
	MerchandiserID *string `gorm:"size:36;index" json:"merchandiser_id"`

	OldValue string  `json:"old_value"`
	NewValue string  `json:"new_value"`
	Metadata JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// RecordAudit appends an audit entry. Audit writes never fail the calling
// operation; a failed insert is logged and dropped.
func RecordAudit(db *gorm.DB, entry AuditLog) {
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("❌ Failed to record audit entry %s: %v", entry.Action, err)
	}
}

// OrderAudit fills the denormalized order fields on an audit entry.
func OrderAudit(order *Order, entry AuditLog) AuditLog {
	entry.OrderNumber = order.OrderNumber
	entry.CustomerName = order.CustomerName
	entry.BuyerName = order.BuyerName
	entry.MerchandiserID = order.MerchandiserID
	if entry.EntityType == "" {
		entry.EntityType = "order"
	}
	if entry.EntityID == "" {
		entry.EntityID = order.ID
	}
	return entry
}
