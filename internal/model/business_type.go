package model

import (
	"time"

	"gorm.io/gorm"
)

// BusinessType represents one tenant category (e.g. "Clinic", "Pharmacy").
// Capacity limits are informational; 0 means unlimited. The menu resolver
// only ever reads these records.
type BusinessType struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Active     bool           `json:"active" gorm:"default:true"`
	MaxRoles   int            `json:"max_roles" gorm:"default:0"`
	MaxUsers   int            `json:"max_users" gorm:"default:0"`
	MaxStores  int            `json:"max_stores" gorm:"default:0"`
	MaxDoctors int            `json:"max_doctors" gorm:"default:0"`
	MaxStaff   int            `json:"max_staff" gorm:"default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Sections []Section `json:"sections,omitempty" gorm:"many2many:section_business_types"`
}

// BaseRoute is the default landing path for a business type. The router uses
// it to redirect a tenant to its home screen; at most one active route per
// business type.
type BaseRoute struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	BusinessTypeID uint           `json:"business_type_id" gorm:"index;not null"`
	Path           string         `json:"path" gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
