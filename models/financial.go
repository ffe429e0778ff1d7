package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LCStatus string

const (
	LCStatusPending  LCStatus = "pending"
	LCStatusReceived LCStatus = "received"
	LCStatusAmended  LCStatus = "amended"
	LCStatusExpired  LCStatus = "expired"
	LCStatusUtilized LCStatus = "utilized"
)

// ProformaInvoice carries a generated per-year PI number and a per-order
// version that only ever goes up (re-issues get version+1).
type ProformaInvoice struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	PINumber string  `gorm:"uniqueIndex;not null" json:"pi_number"`
	Version  int     `gorm:"default:1" json:"version"`
	Amount   float64 `json:"amount"`
	Currency string  `gorm:"default:'USD'" json:"currency"`
	Notes    string  `json:"notes"`

	IssueDate *time.Time `json:"issue_date"`

	CreatedByID *string      `gorm:"size:36" json:"created_by_id"`
	CreatedBy   *UserProfile `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ProformaInvoice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// LetterOfCredit references a bank instrument; the number comes from the
// issuing bank, so unlike PI numbers it is not generated here.
type LetterOfCredit struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	LCNumber    string   `gorm:"not null" json:"lc_number"`
	IssuingBank string   `json:"issuing_bank"`
	Amount      float64  `json:"amount"`
	Currency    string   `gorm:"default:'USD'" json:"currency"`
	Status      LCStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`

	IssueDate  time.Time `gorm:"not null" json:"issue_date"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`

	CreatedByID *string      `gorm:"size:36" json:"created_by_id"`
	CreatedBy   *UserProfile `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *LetterOfCredit) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ValidLCStatus reports whether s names a known LC status.
func ValidLCStatus(s string) bool {
	switch LCStatus(s) {
	case LCStatusPending, LCStatusReceived, LCStatusAmended, LCStatusExpired, LCStatusUtilized:
		return true
	}
	return false
}
