package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionProcess string

const (
	ProcessKnitting  ProductionProcess = "knitting"
	ProcessDyeing    ProductionProcess = "dyeing"
	ProcessCutting   ProductionProcess = "cutting"
	ProcessSewing    ProductionProcess = "sewing"
	ProcessFinishing ProductionProcess = "finishing"
)

// ProductionRecord is a per-process output snapshot reported from the
// factory floor against an order.
type ProductionRecord struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	Process        ProductionProcess `gorm:"type:VARCHAR(20);default:'knitting'" json:"process"`
	ProductionDate *time.Time        `json:"production_date"`

	QuantityProduced int    `json:"quantity_produced"`
	QuantityTarget   int    `json:"quantity_target"`
	DefectCount      int    `json:"defect_count"`
	Remarks          string `json:"remarks"`

	RecordedByID *string      `gorm:"size:36" json:"recorded_by_id"`
	RecordedBy   *UserProfile `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ProductionRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ValidProductionProcess reports whether s names a known process step.
func ValidProductionProcess(s string) bool {
	switch ProductionProcess(s) {
	case ProcessKnitting, ProcessDyeing, ProcessCutting, ProcessSewing, ProcessFinishing:
		return true
	}
	return false
}
