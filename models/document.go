package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is metadata over an opaque blob on disk; the content is never
// inspected. OrderID is nullable: company-level documents have no parent.
type Document struct {
	ID      string  `gorm:"primaryKey;size:36" json:"id"`
	OrderID *string `gorm:"size:36;index" json:"order_id"`
	Order   *Order  `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	FileName    string `gorm:"not null" json:"file_name"`
	StoragePath string `gorm:"not null" json:"storage_path"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Label       string `json:"label"`

	UploadedByID *string      `gorm:"size:36" json:"uploaded_by_id"`
	UploadedBy   *UserProfile `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
