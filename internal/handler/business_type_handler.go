package handler

import (
	"errors"
	"net/http"
	"strconv"

	"menu-service/internal/model"
	"menu-service/pkg/logger"
	"menu-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessTypeRequest defines the structure for business type creation requests
type BusinessTypeRequest struct {
	Name       string `json:"name" validate:"required"`
	Active     *bool  `json:"active"`
	MaxRoles   int    `json:"max_roles"`
	MaxUsers   int    `json:"max_users"`
	MaxStores  int    `json:"max_stores"`
	MaxDoctors int    `json:"max_doctors"`
	MaxStaff   int    `json:"max_staff"`
}

// BaseRouteRequest defines the structure for base route requests
type BaseRouteRequest struct {
	Path string `json:"path" validate:"required"`
}

// CreateBusinessType handles creating a new business type
func CreateBusinessType(c echo.Context) error {
	log := logger.FromContext(c)

	var req BusinessTypeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		log.Warn("Business type name is required")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	// Check if a business type with this name already exists
	existing, err := navStore.ListBusinessTypes(c.Request().Context())
	if err != nil {
		log.Error("Failed to check existing business types", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create business type",
		})
	}
	for _, bt := range existing {
		if bt.Name == req.Name {
			log.Warn("Business type with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Business type with this name already exists",
			})
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	bt := model.BusinessType{
		Name:       req.Name,
		Active:     active,
		MaxRoles:   req.MaxRoles,
		MaxUsers:   req.MaxUsers,
		MaxStores:  req.MaxStores,
		MaxDoctors: req.MaxDoctors,
		MaxStaff:   req.MaxStaff,
	}

	if err := navStore.CreateBusinessType(c.Request().Context(), &bt); err != nil {
		log.Error("Failed to create business type",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create business type",
		})
	}

	prometheus.RecordNavigationOperation("business_type", "create")
	log.Info("Business type created successfully",
		zap.Uint("business_type_id", bt.ID),
		zap.String("name", bt.Name))
	return c.JSON(http.StatusCreated, bt)
}

// ListBusinessTypes handles retrieving all business types
func ListBusinessTypes(c echo.Context) error {
	log := logger.FromContext(c)

	types, err := navStore.ListBusinessTypes(c.Request().Context())
	if err != nil {
		log.Error("Failed to list business types", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve business types",
		})
	}

	log.Info("Business types retrieved successfully", zap.Int("count", len(types)))
	return c.JSON(http.StatusOK, types)
}

// GetBusinessType handles retrieving a single business type by ID
func GetBusinessType(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business type id"})
	}

	bt, err := navStore.GetBusinessType(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Business type not found", zap.Uint("business_type_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Business type not found",
			})
		}
		log.Error("Failed to get business type",
			zap.Uint("business_type_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve business type",
		})
	}

	return c.JSON(http.StatusOK, bt)
}

// DeleteBusinessType handles deleting a business type (soft delete)
func DeleteBusinessType(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business type id"})
	}

	if _, err := navStore.GetBusinessType(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Business type not found for deletion", zap.Uint("business_type_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Business type not found",
			})
		}
		log.Error("Failed to load business type", zap.Uint("business_type_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete business type",
		})
	}

	if err := navStore.DeleteBusinessType(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete business type",
			zap.Uint("business_type_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete business type",
		})
	}

	prometheus.RecordNavigationOperation("business_type", "delete")
	log.Info("Business type deleted successfully", zap.Uint("business_type_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Business type deleted successfully",
	})
}

// SetBaseRoute handles setting the default landing path for a business type.
// Any previous route is replaced so at most one stays active.
func SetBaseRoute(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business type id"})
	}

	var req BaseRouteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
	}

	if _, err := navStore.GetBusinessType(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Business type not found",
			})
		}
		log.Error("Failed to load business type", zap.Uint("business_type_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to set base route",
		})
	}

	route := model.BaseRoute{
		BusinessTypeID: id,
		Path:           req.Path,
	}
	if err := navStore.SetBaseRoute(c.Request().Context(), &route); err != nil {
		log.Error("Failed to set base route",
			zap.Uint("business_type_id", id),
			zap.String("path", req.Path),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to set base route",
		})
	}

	prometheus.RecordNavigationOperation("base_route", "set")
	log.Info("Base route set successfully",
		zap.Uint("business_type_id", id),
		zap.String("path", route.Path))
	return c.JSON(http.StatusCreated, route)
}

// GetBaseRoute handles retrieving the default landing path for a business type
func GetBaseRoute(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid business type id"})
	}

	route, err := navStore.BaseRouteForBusinessType(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Base route not found",
			})
		}
		log.Error("Failed to get base route",
			zap.Uint("business_type_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve base route",
		})
	}

	return c.JSON(http.StatusOK, route)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
