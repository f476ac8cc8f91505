package menu

import (
	"context"

	"menu-service/internal/model"
	"menu-service/internal/store"

	"go.uber.org/zap"
)

// ItemView is a resolved navigation entry. Children carry only the entries
// the caller may see; a denied parent drops its whole subtree.
type ItemView struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	Path     string     `json:"path"`
	Icon     string     `json:"icon,omitempty"`
	Children []ItemView `json:"children,omitempty"`
}

// SectionView is a resolved section. Items is never nil so an empty but
// visible section serializes as an explicit empty list, not as absent.
type SectionView struct {
	ID    uint       `json:"id"`
	Label string     `json:"label"`
	Items []ItemView `json:"items"`
}

// Menu is the full navigation structure for one business type and role,
// keyed by section slug.
type Menu struct {
	Sections map[string]SectionView `json:"sections"`
}

// Resolver computes the navigation structure a caller is permitted to see.
// It holds no state between calls; every resolution is an independent
// read-only pass over the store.
type Resolver struct {
	store  store.NavigationStore
	logger *zap.Logger
}

// NewResolver creates a Resolver over the given store.
func NewResolver(navStore store.NavigationStore, logger *zap.Logger) *Resolver {
	return &Resolver{store: navStore, logger: logger}
}

// GetMenuByBusinessType resolves the menu for a business type as seen by a
// caller holding role. A nil role returns the unrestricted view. An unknown
// business type resolves to an empty menu; tenant validation belongs to the
// HTTP layer. Store failures propagate to the caller unmodified.
func (r *Resolver) GetMenuByBusinessType(ctx context.Context, businessTypeID uint, role *string) (*Menu, error) {
	sections, err := r.store.SectionsForBusinessType(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}

	result := &Menu{Sections: make(map[string]SectionView, len(sections))}
	for i := range sections {
		section := &sections[i]
		if !SectionVisible(section, role) {
			continue
		}

		items, err := r.store.ItemsForSection(ctx, section.ID)
		if err != nil {
			return nil, err
		}

		// Visible sections are kept even when no item survives filtering, so
		// callers can render empty groups.
		view := SectionView{
			ID:    section.ID,
			Label: section.Label,
			Items: filterItems(items, role),
		}
		result.Sections[Slugify(section.Label)] = view
	}

	r.logger.Debug("menu resolved",
		zap.Uint("business_type_id", businessTypeID),
		zap.Int("section_count", len(result.Sections)))
	return result, nil
}

// filterItems applies the item policy recursively. Children of a denied item
// are never evaluated: an invisible parent cannot surface orphaned children.
func filterItems(items []model.MenuItem, role *string) []ItemView {
	views := make([]ItemView, 0, len(items))
	for i := range items {
		item := &items[i]
		if !ItemVisible(item, role) {
			continue
		}
		view := ItemView{
			ID:    item.ID,
			Title: item.Title,
			Path:  item.Path,
			Icon:  item.Icon,
		}
		if len(item.Children) > 0 {
			view.Children = filterItems(item.Children, role)
		}
		views = append(views, view)
	}
	return views
}
