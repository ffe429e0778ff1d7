package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type OrderStage string
type OrderCategory string

const (
	// Order statuses (fine-grained lifecycle, independent of stage)
	OrderStatusPending    OrderStatus = "pending"     // Order recorded, not yet confirmed by the buyer
	OrderStatusConfirmed  OrderStatus = "confirmed"   // Confirmed, sampling may begin
	OrderStatusInProgress OrderStatus = "in_progress" // Sampling/production underway
	OrderStatusOnHold     OrderStatus = "on_hold"     // Paused by either party
	OrderStatusCompleted  OrderStatus = "completed"   // Delivered and closed
	OrderStatusCancelled  OrderStatus = "cancelled"   // Cancelled before delivery

	// Stages (coarse progression gated by approvals)
	StageDesign        OrderStage = "Design"
	StageInDevelopment OrderStage = "In Development"
	StageProduction    OrderStage = "Production"
	StageDelivered     OrderStage = "Delivered"

	// Dashboard categories derived from the stage
	CategoryUpcoming OrderCategory = "upcoming"
	CategoryRunning  OrderCategory = "running"
	CategoryArchived OrderCategory = "archived"
)

type ApprovalDecision string

const (
	ApprovalPending  ApprovalDecision = "pending"
	ApprovalApproved ApprovalDecision = "approved"
	ApprovalRejected ApprovalDecision = "rejected"
)

// Approval gate keys. The first four may be decided in any order; PP sample
// is the final gate and requires all of them to be approved first.
const (
	GateLabDip      = "labDip"
	GateStrikeOff   = "strikeOff"
	GateQualityTest = "qualityTest"
	GateBulkSwatch  = "bulkSwatch"
	GatePPSample    = "ppSample"
)

// PrerequisiteGates are the approvals that must all be approved before the
// PP sample gate may be.
var PrerequisiteGates = []string{GateLabDip, GateStrikeOff, GateQualityTest, GateBulkSwatch}

// AllGates lists every valid approval key.
var AllGates = []string{GateLabDip, GateStrikeOff, GateQualityTest, GateBulkSwatch, GatePPSample}

type Order struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	CustomerName      string  `gorm:"not null" json:"customer_name"`
	BuyerName         string  `json:"buyer_name"`
	FabricType        string  `json:"fabric_type"`
	FabricComposition string  `json:"fabric_composition"`
	Quantity          int     `json:"quantity"`
	Unit              string  `gorm:"default:'meters'" json:"unit"`
	Currency          string  `gorm:"default:'USD'" json:"currency"`
	Value             float64 `json:"value"`

	OrderDate            *time.Time `json:"order_date"`
	ETD                  *time.Time `json:"etd"`
	ETA                  *time.Time `json:"eta"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date"`

	Status         OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CurrentStage   OrderStage    `gorm:"type:VARCHAR(30);default:'Design'" json:"current_stage"`
	Category       OrderCategory `gorm:"type:VARCHAR(20);default:'upcoming'" json:"category"`
	ApprovalStatus ApprovalMap   `gorm:"type:jsonb" json:"approval_status"`

	MerchandiserID *string      `gorm:"size:36;index" json:"merchandiser_id"`
	Merchandiser   *UserProfile `gorm:"foreignKey:MerchandiserID" json:"merchandiser,omitempty"`

	Samples           []Sample           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"samples,omitempty"`
	ProformaInvoices  []ProformaInvoice  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"proforma_invoices,omitempty"`
	LettersOfCredit   []LetterOfCredit   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"letters_of_credit,omitempty"`
	Incidents         []Incident         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"incidents,omitempty"`
	Shipments         []Shipment         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shipments,omitempty"`
	Documents         []Document         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	ProductionRecords []ProductionRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"production_records,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.ApprovalStatus == nil {
		o.ApprovalStatus = NewApprovalMap()
	}
	return nil
}

// NewApprovalMap returns every gate set to pending.
func NewApprovalMap() ApprovalMap {
	m := make(ApprovalMap, len(AllGates))
	for _, g := range AllGates {
		m[g] = ApprovalPending
	}
	return m
}

// PrerequisitesApproved reports whether every gate before PP sample is approved.
func (m ApprovalMap) PrerequisitesApproved() bool {
	for _, g := range PrerequisiteGates {
		if m[g] != ApprovalApproved {
			return false
		}
	}
	return true
}

// ValidGate reports whether key names a known approval gate.
func ValidGate(key string) bool {
	for _, g := range AllGates {
		if g == key {
			return true
		}
	}
	return false
}

// ValidDecision reports whether s is a known approval state.
func ValidDecision(s string) bool {
	switch ApprovalDecision(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

var stageOrder = map[OrderStage]int{
	StageDesign:        0,
	StageInDevelopment: 1,
	StageProduction:    2,
	StageDelivered:     3,
}

// ValidStage reports whether s names a known stage.
func ValidStage(s string) bool {
	_, ok := stageOrder[OrderStage(s)]
	return ok
}

// StageForward reports whether moving from one stage to another goes forward.
// Staying on the same stage counts as forward (a no-op change).
func StageForward(from, to OrderStage) bool {
	return stageOrder[to] >= stageOrder[from]
}

// CategoryForStage maps a stage to its dashboard category. The mapping is
// total over the defined stages.
func CategoryForStage(stage OrderStage) OrderCategory {
	switch stage {
	case StageDesign:
		return CategoryUpcoming
	case StageInDevelopment, StageProduction:
		return CategoryRunning
	case StageDelivered:
		return CategoryArchived
	}
	return CategoryUpcoming
}
