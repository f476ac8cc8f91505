package store

import (
	"context"

	"menu-service/internal/model"
)

// NavigationStore is the persistence boundary for the navigation entities.
// The menu resolver only uses the two query methods; the rest back the
// configuration handlers and the seeder.
type NavigationStore interface {
	// SectionsForBusinessType returns every section whose owner set contains
	// the given business type. An unknown business type yields an empty slice.
	SectionsForBusinessType(ctx context.Context, businessTypeID uint) ([]model.Section, error)

	// ItemsForSection returns the section's top-level items in declaration
	// order, with nested children populated recursively in the same order.
	ItemsForSection(ctx context.Context, sectionID uint) ([]model.MenuItem, error)

	CreateBusinessType(ctx context.Context, bt *model.BusinessType) error
	GetBusinessType(ctx context.Context, id uint) (*model.BusinessType, error)
	ListBusinessTypes(ctx context.Context) ([]model.BusinessType, error)
	DeleteBusinessType(ctx context.Context, id uint) error
	CountBusinessTypes(ctx context.Context) (int64, error)

	SetBaseRoute(ctx context.Context, route *model.BaseRoute) error
	BaseRouteForBusinessType(ctx context.Context, businessTypeID uint) (*model.BaseRoute, error)

	CreateSection(ctx context.Context, section *model.Section, businessTypeIDs []uint) error
	GetSection(ctx context.Context, id uint) (*model.Section, error)
	DeleteSection(ctx context.Context, id uint) error

	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	GetMenuItem(ctx context.Context, id uint) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uint) error
}
