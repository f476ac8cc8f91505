package handler

import (
	"net/http"
	"strconv"
	"time"

	"menu-service/internal/menu"
	"menu-service/internal/middleware"
	"menu-service/internal/store"
	"menu-service/pkg/logger"
	"menu-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	navStore store.NavigationStore
	resolver *menu.Resolver
)

// Init wires the handlers to the navigation store and resolver. Called once
// from main before routes are registered.
func Init(s store.NavigationStore, r *menu.Resolver) {
	navStore = s
	resolver = r
}

// GetMenu resolves the navigation structure for a business type as seen by
// the caller. Authenticated callers get the menu filtered by their role;
// anonymous callers get the unrestricted view.
func GetMenu(c echo.Context) error {
	log := logger.FromContext(c)

	businessTypeID, err := strconv.ParseUint(c.Param("businessTypeId"), 10, 32)
	if err != nil {
		log.Warn("Invalid business type ID", zap.String("value", c.Param("businessTypeId")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid business type id",
		})
	}

	role := middleware.RoleFromContext(c)
	view := "full"
	if role != nil {
		view = "restricted"
		log.Info("Resolving menu",
			zap.Uint64("business_type_id", businessTypeID),
			zap.String("role", *role))
	} else {
		log.Info("Resolving unrestricted menu",
			zap.Uint64("business_type_id", businessTypeID))
	}

	start := time.Now()
	resolved, err := resolver.GetMenuByBusinessType(c.Request().Context(), uint(businessTypeID), role)
	if err != nil {
		prometheus.RecordMenuResolution("error", view, start)
		log.Error("Failed to resolve menu",
			zap.Uint64("business_type_id", businessTypeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to resolve menu",
		})
	}

	prometheus.RecordMenuResolution("success", view, start)
	prometheus.MenuSectionsReturned.WithLabelValues(view).Observe(float64(len(resolved.Sections)))

	log.Info("Menu resolved",
		zap.Uint64("business_type_id", businessTypeID),
		zap.Int("section_count", len(resolved.Sections)))
	return c.JSON(http.StatusOK, resolved)
}
