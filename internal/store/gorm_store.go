package store

import (
	"context"
	"errors"
	"time"

	"menu-service/internal/model"
	"menu-service/prometheus"

	"gorm.io/gorm"
)

// ErrBusinessTypeNotFound is returned when a write references a business
// type that does not exist.
var ErrBusinessTypeNotFound = errors.New("business type not found")

// GormStore implements NavigationStore on a gorm database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a NavigationStore backed by the given database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SectionsForBusinessType queries through the join table so that a shared
// section qualifies for each of its owners. The inner join also enforces the
// malformed-record rule for sections: a section with no owners at all has no
// join row and never surfaces for any business type.
func (s *GormStore) SectionsForBusinessType(ctx context.Context, businessTypeID uint) ([]model.Section, error) {
	defer prometheus.TrackDBOperation("query_sections")(time.Now())

	var sections []model.Section
	result := s.db.WithContext(ctx).
		Joins("JOIN section_business_types sbt ON sbt.section_id = sections.id").
		Where("sbt.business_type_id = ?", businessTypeID).
		Find(&sections)
	if result.Error != nil {
		return nil, result.Error
	}
	return sections, nil
}

// ItemsForSection loads the section's items in insertion order and assembles
// the parent/child tree in memory. gorm's Preload cannot follow the
// self-reference to arbitrary depth, so nesting is resolved here.
func (s *GormStore) ItemsForSection(ctx context.Context, sectionID uint) ([]model.MenuItem, error) {
	defer prometheus.TrackDBOperation("query_items")(time.Now())

	var items []model.MenuItem
	result := s.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("position, id").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return buildItemTree(items), nil
}

// buildItemTree turns a flat, ordered item slice into top-level items with
// nested children, preserving the input order at every level. Rows whose
// parent is missing from the slice are dropped as malformed rather than
// surfaced as roots.
func buildItemTree(items []model.MenuItem) []model.MenuItem {
	ids := make(map[uint]bool, len(items))
	for i := range items {
		ids[items[i].ID] = true
	}

	childrenOf := make(map[uint][]*model.MenuItem)
	var roots []*model.MenuItem
	for i := range items {
		item := &items[i]
		item.Children = nil
		switch {
		case item.ParentID == nil:
			roots = append(roots, item)
		case ids[*item.ParentID] && *item.ParentID != item.ID:
			childrenOf[*item.ParentID] = append(childrenOf[*item.ParentID], item)
		}
	}

	var build func(n *model.MenuItem) model.MenuItem
	build = func(n *model.MenuItem) model.MenuItem {
		out := *n
		out.Children = nil
		for _, child := range childrenOf[n.ID] {
			out.Children = append(out.Children, build(child))
		}
		return out
	}

	result := make([]model.MenuItem, 0, len(roots))
	for _, root := range roots {
		result = append(result, build(root))
	}
	return result
}

func (s *GormStore) CreateBusinessType(ctx context.Context, bt *model.BusinessType) error {
	defer prometheus.TrackDBOperation("create_business_type")(time.Now())
	return s.db.WithContext(ctx).Create(bt).Error
}

func (s *GormStore) GetBusinessType(ctx context.Context, id uint) (*model.BusinessType, error) {
	defer prometheus.TrackDBOperation("get_business_type")(time.Now())

	var bt model.BusinessType
	if err := s.db.WithContext(ctx).First(&bt, id).Error; err != nil {
		return nil, err
	}
	return &bt, nil
}

func (s *GormStore) ListBusinessTypes(ctx context.Context) ([]model.BusinessType, error) {
	defer prometheus.TrackDBOperation("list_business_types")(time.Now())

	var types []model.BusinessType
	if err := s.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *GormStore) DeleteBusinessType(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete_business_type")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.BusinessType{}, id).Error
}

func (s *GormStore) CountBusinessTypes(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation("count_business_types")(time.Now())

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.BusinessType{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetBaseRoute replaces any existing landing path for the route's business
// type, keeping at most one active route per business type.
func (s *GormStore) SetBaseRoute(ctx context.Context, route *model.BaseRoute) error {
	defer prometheus.TrackDBOperation("set_base_route")(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_type_id = ?", route.BusinessTypeID).
			Delete(&model.BaseRoute{}).Error; err != nil {
			return err
		}
		return tx.Create(route).Error
	})
}

func (s *GormStore) BaseRouteForBusinessType(ctx context.Context, businessTypeID uint) (*model.BaseRoute, error) {
	defer prometheus.TrackDBOperation("get_base_route")(time.Now())

	var route model.BaseRoute
	if err := s.db.WithContext(ctx).
		Where("business_type_id = ?", businessTypeID).
		First(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

// CreateSection persists the section and links it to each owning business
// type through the join table. Every referenced business type must exist;
// otherwise the section would silently end up with fewer owners than
// requested, and the transaction rolls back with ErrBusinessTypeNotFound.
func (s *GormStore) CreateSection(ctx context.Context, section *model.Section, businessTypeIDs []uint) error {
	defer prometheus.TrackDBOperation("create_section")(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(section).Error; err != nil {
			return err
		}
		if len(businessTypeIDs) == 0 {
			return nil
		}
		var owners []model.BusinessType
		if err := tx.Find(&owners, businessTypeIDs).Error; err != nil {
			return err
		}
		if len(owners) != len(uniqueIDs(businessTypeIDs)) {
			return ErrBusinessTypeNotFound
		}
		return tx.Model(section).Association("BusinessTypes").Append(owners)
	})
}

// uniqueIDs drops duplicate IDs, preserving first-seen order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique
}

func (s *GormStore) GetSection(ctx context.Context, id uint) (*model.Section, error) {
	defer prometheus.TrackDBOperation("get_section")(time.Now())

	var section model.Section
	if err := s.db.WithContext(ctx).Preload("BusinessTypes").First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// DeleteSection removes the section together with all of its items so no
// orphan items remain visible.
func (s *GormStore) DeleteSection(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete_section")(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&model.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Section{ID: id}).Association("BusinessTypes").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Section{}, id).Error
	})
}

func (s *GormStore) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	defer prometheus.TrackDBOperation("create_menu_item")(time.Now())
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore) GetMenuItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	defer prometheus.TrackDBOperation("get_menu_item")(time.Now())

	var item model.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem removes the item and its whole child subtree.
func (s *GormStore) DeleteMenuItem(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete_menu_item")(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending := []uint{id}
		for len(pending) > 0 {
			batch := pending
			pending = nil
			var children []model.MenuItem
			if err := tx.Where("parent_id IN ?", batch).Find(&children).Error; err != nil {
				return err
			}
			for _, child := range children {
				pending = append(pending, child.ID)
			}
			if err := tx.Delete(&model.MenuItem{}, batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
