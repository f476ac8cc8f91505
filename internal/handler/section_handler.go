package handler

import (
	"errors"
	"net/http"
	"strconv"

	"menu-service/internal/menu"
	"menu-service/internal/model"
	"menu-service/internal/store"
	"menu-service/pkg/logger"
	"menu-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SectionRequest defines the structure for section creation requests.
// AllowedRoles may be empty, which leaves the section visible to every role.
type SectionRequest struct {
	Label           string   `json:"label" validate:"required"`
	BusinessTypeIDs []uint   `json:"business_type_ids" validate:"required"`
	AllowedRoles    []string `json:"allowed_roles"`
}

// MenuItemRequest defines the structure for menu item creation requests.
// AllowedRoles keeps the tri-state of the stored column: omitted or null
// means public, an array (even an empty one) restricts the item to those
// roles.
type MenuItemRequest struct {
	Title        string            `json:"title" validate:"required"`
	Path         string            `json:"path" validate:"required"`
	Icon         string            `json:"icon"`
	ParentID     *uint             `json:"parent_id"`
	Position     int               `json:"position"`
	AllowedRoles model.Restriction `json:"allowed_roles"`
}

// CreateSection handles creating a navigation section owned by one or more
// business types
func CreateSection(c echo.Context) error {
	log := logger.FromContext(c)

	var req SectionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Label == "" || menu.Slugify(req.Label) == "" {
		log.Warn("Section label missing or unusable", zap.String("label", req.Label))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "label is required",
		})
	}
	if len(req.BusinessTypeIDs) == 0 {
		log.Warn("Section created without business types never surfaces")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "business_type_ids is required",
		})
	}

	// Distinct labels per business type keep slug collisions out of the
	// resolved menu, where the last section resolved would win the key.
	slug := menu.Slugify(req.Label)
	for _, btID := range req.BusinessTypeIDs {
		existing, err := navStore.SectionsForBusinessType(c.Request().Context(), btID)
		if err != nil {
			log.Error("Failed to check existing sections",
				zap.Uint("business_type_id", btID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to create section",
			})
		}
		for _, s := range existing {
			if menu.Slugify(s.Label) == slug {
				log.Warn("Section with this label already exists for business type",
					zap.String("label", req.Label),
					zap.Uint("business_type_id", btID))
				return c.JSON(http.StatusConflict, echo.Map{
					"error": "Section with this label already exists for this business type",
				})
			}
		}
	}

	section := model.Section{
		Label:        req.Label,
		AllowedRoles: model.RoleSet(req.AllowedRoles),
	}
	if err := navStore.CreateSection(c.Request().Context(), &section, req.BusinessTypeIDs); err != nil {
		if errors.Is(err, store.ErrBusinessTypeNotFound) {
			log.Warn("Section references unknown business types",
				zap.String("label", req.Label),
				zap.Uints("business_type_ids", req.BusinessTypeIDs))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "One or more business types not found",
			})
		}
		log.Error("Failed to create section",
			zap.String("label", req.Label),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create section",
		})
	}

	prometheus.RecordNavigationOperation("section", "create")
	log.Info("Section created successfully",
		zap.Uint("section_id", section.ID),
		zap.String("label", section.Label),
		zap.Uints("business_type_ids", req.BusinessTypeIDs))
	return c.JSON(http.StatusCreated, section)
}

// ListSections handles retrieving the sections owned by a business type
func ListSections(c echo.Context) error {
	log := logger.FromContext(c)

	btID, err := parseQueryID(c, "business_type_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "business_type_id is required"})
	}

	sections, err := navStore.SectionsForBusinessType(c.Request().Context(), btID)
	if err != nil {
		log.Error("Failed to list sections",
			zap.Uint("business_type_id", btID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sections",
		})
	}

	log.Info("Sections retrieved successfully",
		zap.Uint("business_type_id", btID),
		zap.Int("count", len(sections)))
	return c.JSON(http.StatusOK, sections)
}

// DeleteSection handles deleting a section together with its items
func DeleteSection(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid section id"})
	}

	if _, err := navStore.GetSection(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Section not found for deletion", zap.Uint("section_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Section not found",
			})
		}
		log.Error("Failed to load section", zap.Uint("section_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete section",
		})
	}

	if err := navStore.DeleteSection(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete section",
			zap.Uint("section_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete section",
		})
	}

	prometheus.RecordNavigationOperation("section", "delete")
	log.Info("Section deleted successfully", zap.Uint("section_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Section deleted successfully",
	})
}

// CreateMenuItem handles adding an item to a section, optionally nested under
// an existing item of the same section
func CreateMenuItem(c echo.Context) error {
	log := logger.FromContext(c)

	sectionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid section id"})
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Title == "" || req.Path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and path are required"})
	}

	if _, err := navStore.GetSection(c.Request().Context(), sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Section not found",
			})
		}
		log.Error("Failed to load section", zap.Uint("section_id", sectionID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create menu item",
		})
	}

	if req.ParentID != nil {
		parent, err := navStore.GetMenuItem(c.Request().Context(), *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{
					"error": "Parent item not found",
				})
			}
			log.Error("Failed to load parent item", zap.Uint("parent_id", *req.ParentID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to create menu item",
			})
		}
		if parent.SectionID != sectionID {
			log.Warn("Parent item belongs to a different section",
				zap.Uint("parent_id", *req.ParentID),
				zap.Uint("parent_section_id", parent.SectionID),
				zap.Uint("section_id", sectionID))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "parent item belongs to a different section",
			})
		}
	}

	item := model.MenuItem{
		SectionID:    sectionID,
		ParentID:     req.ParentID,
		Title:        req.Title,
		Path:         req.Path,
		Icon:         req.Icon,
		Position:     req.Position,
		AllowedRoles: req.AllowedRoles,
	}
	if err := navStore.CreateMenuItem(c.Request().Context(), &item); err != nil {
		log.Error("Failed to create menu item",
			zap.Uint("section_id", sectionID),
			zap.String("title", req.Title),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create menu item",
		})
	}

	prometheus.RecordNavigationOperation("menu_item", "create")
	log.Info("Menu item created successfully",
		zap.Uint("item_id", item.ID),
		zap.Uint("section_id", sectionID),
		zap.String("title", item.Title))
	return c.JSON(http.StatusCreated, item)
}

// DeleteMenuItem handles deleting an item and its child subtree
func DeleteMenuItem(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	if _, err := navStore.GetMenuItem(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Menu item not found for deletion", zap.Uint("item_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Menu item not found",
			})
		}
		log.Error("Failed to load menu item", zap.Uint("item_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete menu item",
		})
	}

	if err := navStore.DeleteMenuItem(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete menu item",
			zap.Uint("item_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete menu item",
		})
	}

	prometheus.RecordNavigationOperation("menu_item", "delete")
	log.Info("Menu item deleted successfully", zap.Uint("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Menu item deleted successfully",
	})
}

func parseQueryID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
