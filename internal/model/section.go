package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RoleSet is a set of role names stored as a jsonb array column.
// On sections an empty set means the section is visible to every role.
type RoleSet []string

// Contains reports whether role is a member of the set.
func (r RoleSet) Contains(role string) bool {
	for _, name := range r {
		if name == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer. An empty set is stored as [] so that the
// column is never NULL; NULL is reserved for the item-level public marker.
func (r RoleSet) Value() (driver.Value, error) {
	if r == nil {
		r = RoleSet{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *RoleSet) Scan(value interface{}) error {
	if value == nil {
		*r = RoleSet{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported role set column type %T", value)
	}
}

// Section is a named grouping of navigation items. A section may be shared by
// multiple business types; ownership is a set, not a single parent.
type Section struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Label         string         `json:"label" gorm:"type:varchar(100);not null"`
	AllowedRoles  RoleSet        `json:"allowed_roles" gorm:"type:jsonb"`
	BusinessTypes []BusinessType `json:"business_types,omitempty" gorm:"many2many:section_business_types"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Items []MenuItem `json:"items,omitempty" gorm:"foreignKey:SectionID"`
}
