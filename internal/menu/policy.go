package menu

import "menu-service/internal/model"

// The two visibility rules are deliberately asymmetric. Sections default
// open: an empty AllowedRoles set means every role sees the section. Items
// default closed: only the explicit public marker opens an item, and a
// restricted item with an empty role set is visible to no role at all.
// A nil role is the bypass used for the unrestricted admin/diagnostic view;
// it means "apply no restriction", never "deny".

// SectionVisible reports whether a caller holding role may see the section.
func SectionVisible(section *model.Section, role *string) bool {
	if role == nil {
		return true
	}
	if len(section.AllowedRoles) == 0 {
		return true
	}
	return section.AllowedRoles.Contains(*role)
}

// ItemVisible reports whether a caller holding role may see the item.
func ItemVisible(item *model.MenuItem, role *string) bool {
	if role == nil {
		return true
	}
	if item.AllowedRoles.IsPublic() {
		return true
	}
	return item.AllowedRoles.Allows(*role)
}
