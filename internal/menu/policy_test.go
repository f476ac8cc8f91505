package menu

import (
	"testing"

	"menu-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func rolePtr(role string) *string {
	return &role
}

func TestSectionVisibleEmptyRolesMeansEveryone(t *testing.T) {
	section := &model.Section{Label: "Dashboard", AllowedRoles: model.RoleSet{}}

	assert.True(t, SectionVisible(section, rolePtr("Admin")))
	assert.True(t, SectionVisible(section, rolePtr("Nurse")))
	assert.True(t, SectionVisible(section, nil))
}

func TestSectionVisibleRestricted(t *testing.T) {
	section := &model.Section{
		Label:        "Administration",
		AllowedRoles: model.RoleSet{"Admin", "Owner"},
	}

	assert.True(t, SectionVisible(section, rolePtr("Admin")))
	assert.True(t, SectionVisible(section, rolePtr("Owner")))
	assert.False(t, SectionVisible(section, rolePtr("Nurse")))
}

func TestSectionVisibleNilRoleBypassesRestriction(t *testing.T) {
	section := &model.Section{
		Label:        "Administration",
		AllowedRoles: model.RoleSet{"Admin"},
	}

	assert.True(t, SectionVisible(section, nil))
}

func TestItemVisiblePublicMarker(t *testing.T) {
	item := &model.MenuItem{Title: "Public Item", AllowedRoles: model.Public()}

	assert.True(t, ItemVisible(item, rolePtr("Admin")))
	assert.True(t, ItemVisible(item, rolePtr("Nurse")))
	assert.True(t, ItemVisible(item, nil))
}

func TestItemVisibleRestricted(t *testing.T) {
	item := &model.MenuItem{Title: "Doctor Only", AllowedRoles: model.RestrictedTo("Doctor")}

	assert.True(t, ItemVisible(item, rolePtr("Doctor")))
	assert.False(t, ItemVisible(item, rolePtr("Nurse")))
	assert.True(t, ItemVisible(item, nil))
}

// An empty restricted set is not the same as public: it denies every
// concrete role, while the bypass still sees the item.
func TestItemVisibleEmptyRestrictionDeniesAllRoles(t *testing.T) {
	item := &model.MenuItem{Title: "Hidden", AllowedRoles: model.RestrictedTo()}

	assert.False(t, ItemVisible(item, rolePtr("Admin")))
	assert.False(t, ItemVisible(item, rolePtr("Doctor")))
	assert.True(t, ItemVisible(item, nil))
}
