package seed

import (
	"context"
	"fmt"

	"menu-service/internal/menu"
	"menu-service/internal/model"
	"menu-service/internal/store"

	"go.uber.org/zap"
)

// Run seeds demo navigation data and verifies the resolver against it. The
// seed only runs against an empty store so restarts never duplicate rows.
func Run(ctx context.Context, navStore store.NavigationStore, resolver *menu.Resolver, log *zap.Logger) error {
	count, err := navStore.CountBusinessTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect store before seeding: %w", err)
	}
	if count > 0 {
		log.Info("Seed skipped, store already populated", zap.Int64("business_type_count", count))
		return nil
	}

	clinic := &model.BusinessType{Name: "Clinic", Active: true, MaxDoctors: 10}
	pharmacy := &model.BusinessType{Name: "Pharmacy", Active: true, MaxStores: 3}
	for _, bt := range []*model.BusinessType{clinic, pharmacy} {
		if err := navStore.CreateBusinessType(ctx, bt); err != nil {
			return fmt.Errorf("failed to seed business type %q: %w", bt.Name, err)
		}
	}

	routes := []*model.BaseRoute{
		{BusinessTypeID: clinic.ID, Path: "/clinic/dashboard"},
		{BusinessTypeID: pharmacy.ID, Path: "/pharmacy/dashboard"},
	}
	for _, route := range routes {
		if err := navStore.SetBaseRoute(ctx, route); err != nil {
			return fmt.Errorf("failed to seed base route %q: %w", route.Path, err)
		}
	}

	// One section shared by both business types, one owned by the clinic
	// alone. Together they cover the sharing and ownership cases.
	dashboard := &model.Section{Label: "Dashboard"}
	if err := navStore.CreateSection(ctx, dashboard, []uint{clinic.ID, pharmacy.ID}); err != nil {
		return fmt.Errorf("failed to seed shared section: %w", err)
	}
	clinical := &model.Section{Label: "Clinical"}
	if err := navStore.CreateSection(ctx, clinical, []uint{clinic.ID}); err != nil {
		return fmt.Errorf("failed to seed clinic section: %w", err)
	}

	if err := navStore.CreateMenuItem(ctx, &model.MenuItem{
		SectionID: dashboard.ID, Title: "Home", Path: "/home", Icon: "home",
		Position: 1, AllowedRoles: model.Public(),
	}); err != nil {
		return fmt.Errorf("failed to seed dashboard item: %w", err)
	}

	// Items covering the whole tri-state: public, role-restricted with
	// nesting, and restricted to nobody.
	patients := &model.MenuItem{
		SectionID: clinical.ID, Title: "Patients", Path: "/patients", Icon: "users",
		Position: 1, AllowedRoles: model.RestrictedTo("Doctor"),
	}
	items := []*model.MenuItem{
		{SectionID: clinical.ID, Title: "Overview", Path: "/overview",
			Position: 0, AllowedRoles: model.Public()},
		patients,
		{SectionID: clinical.ID, Title: "Billing", Path: "/billing", Icon: "invoice",
			Position: 2, AllowedRoles: model.RestrictedTo("Admin")},
		{SectionID: clinical.ID, Title: "Audit Log", Path: "/audit",
			Position: 3, AllowedRoles: model.RestrictedTo()},
	}
	for _, item := range items {
		if err := navStore.CreateMenuItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed item %q: %w", item.Title, err)
		}
	}

	children := []*model.MenuItem{
		{SectionID: clinical.ID, ParentID: &patients.ID, Title: "Appointments",
			Path: "/patients/appointments", Position: 0, AllowedRoles: model.Public()},
		{SectionID: clinical.ID, ParentID: &patients.ID, Title: "Prescriptions",
			Path: "/patients/prescriptions", Position: 1, AllowedRoles: model.RestrictedTo("Doctor")},
	}
	for _, child := range children {
		if err := navStore.CreateMenuItem(ctx, child); err != nil {
			return fmt.Errorf("failed to seed child item %q: %w", child.Title, err)
		}
	}

	log.Info("Seed data created",
		zap.Uint("clinic_id", clinic.ID),
		zap.Uint("pharmacy_id", pharmacy.ID))

	return verify(ctx, resolver, clinic.ID, pharmacy.ID, log)
}

// verify resolves the seeded menus in bypass mode and for two concrete roles
// and logs what each caller sees. It exercises the shared section, the
// unrestricted view, and the item tri-state.
func verify(ctx context.Context, resolver *menu.Resolver, clinicID, pharmacyID uint, log *zap.Logger) error {
	doctor := "Doctor"
	nurse := "Nurse"

	checks := []struct {
		name           string
		businessTypeID uint
		role           *string
	}{
		{"clinic unrestricted", clinicID, nil},
		{"clinic as doctor", clinicID, &doctor},
		{"clinic as nurse", clinicID, &nurse},
		{"pharmacy unrestricted", pharmacyID, nil},
	}

	for _, check := range checks {
		resolved, err := resolver.GetMenuByBusinessType(ctx, check.businessTypeID, check.role)
		if err != nil {
			return fmt.Errorf("seed verification %q failed: %w", check.name, err)
		}
		itemCount := 0
		for _, section := range resolved.Sections {
			itemCount += len(section.Items)
		}
		log.Info("Seed verification",
			zap.String("check", check.name),
			zap.Int("sections", len(resolved.Sections)),
			zap.Int("top_level_items", itemCount))
	}
	return nil
}
