package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleMerchandiser Role = "merchandiser"
)

// UserProfile mirrors the auth identity: the ID is minted at registration
// time, never by the database, so it can track an external provider's subject.
type UserProfile struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Email        string  `gorm:"unique;not null" json:"email"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	Role         Role    `gorm:"type:VARCHAR(20);default:'merchandiser'" json:"role"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Orders       []Order `gorm:"foreignKey:MerchandiserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`

	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleMerchandiser:
		return true
	}
	return false
}
