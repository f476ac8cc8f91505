package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Restriction is the item-level access rule: either public (visible to any
// caller) or restricted to a set of roles. Unlike Section.AllowedRoles, an
// empty restricted set denies every role; only the explicit public marker
// opens an item up. The column is nullable jsonb and NULL means public, so
// the distinction survives the database round-trip.
type Restriction struct {
	roles      RoleSet
	restricted bool
}

// Public returns the unrestricted marker.
func Public() Restriction {
	return Restriction{}
}

// RestrictedTo returns a restriction limited to the given roles. With no
// roles the item is visible to nobody except bypass-mode callers.
func RestrictedTo(roles ...string) Restriction {
	return Restriction{roles: RoleSet(roles), restricted: true}
}

// IsPublic reports whether the item carries no restriction at all.
func (r Restriction) IsPublic() bool {
	return !r.restricted
}

// Allows reports whether role is a member of the restricted set. Always false
// for an empty set; callers handle the public and bypass cases themselves.
func (r Restriction) Allows(role string) bool {
	return r.restricted && r.roles.Contains(role)
}

// Roles returns the restricted role set, nil for public restrictions.
func (r Restriction) Roles() RoleSet {
	if !r.restricted {
		return nil
	}
	return r.roles
}

// Value implements driver.Valuer. Public restrictions are stored as SQL NULL.
func (r Restriction) Value() (driver.Value, error) {
	if !r.restricted {
		return nil, nil
	}
	if r.roles == nil {
		r.roles = RoleSet{}
	}
	return json.Marshal(r.roles)
}

// Scan implements sql.Scanner.
func (r *Restriction) Scan(value interface{}) error {
	if value == nil {
		*r = Restriction{}
		return nil
	}
	var roles RoleSet
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, &roles); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &roles); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported restriction column type %T", value)
	}
	if roles == nil {
		roles = RoleSet{}
	}
	*r = Restriction{roles: roles, restricted: true}
	return nil
}

// MarshalJSON renders public restrictions as JSON null and restricted ones as
// the role array, mirroring the column encoding.
func (r Restriction) MarshalJSON() ([]byte, error) {
	if !r.restricted {
		return []byte("null"), nil
	}
	if r.roles == nil {
		r.roles = RoleSet{}
	}
	return json.Marshal(r.roles)
}

// UnmarshalJSON parses null as public and an array as restricted.
func (r *Restriction) UnmarshalJSON(data []byte) error {
	var roles *RoleSet
	if err := json.Unmarshal(data, &roles); err != nil {
		return err
	}
	if roles == nil {
		*r = Restriction{}
		return nil
	}
	*r = Restriction{roles: *roles, restricted: true}
	return nil
}

// MenuItem is a single navigation entry belonging to a section. Items nest
// through ParentID for multi-level menus; Position preserves the order items
// were declared in.
type MenuItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	SectionID    uint           `json:"section_id" gorm:"index;not null"`
	ParentID     *uint          `json:"parent_id,omitempty" gorm:"index"`
	Title        string         `json:"title" gorm:"type:varchar(100);not null"`
	Path         string         `json:"path" gorm:"type:varchar(255);not null"`
	Icon         string         `json:"icon,omitempty" gorm:"type:varchar(100)"`
	Position     int            `json:"position" gorm:"default:0"`
	AllowedRoles Restriction    `json:"allowed_roles" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Children []MenuItem `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}
