package main

import (
	"context"

	"menu-service/internal/handler"
	"menu-service/internal/menu"
	mid "menu-service/internal/middleware"
	"menu-service/internal/seed"
	"menu-service/internal/store"
	"menu-service/pkg/config"
	"menu-service/pkg/database"
	"menu-service/pkg/jwtutil"
	"menu-service/pkg/logger"
	"menu-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting menu-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the navigation store, resolver and handlers
	navStore := store.NewGormStore(database.GetDB())
	resolver := menu.NewResolver(navStore, log)
	handler.Init(navStore, resolver)

	// Seed demo navigation data and verify the resolver against it
	if appConfig.Seed.Enabled {
		if err := seed.Run(context.Background(), navStore, resolver, log); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Menu resolution - optional auth: an anonymous caller gets the
	// unrestricted view, an authenticated one gets its role's view
	e.GET("/api/menu/:businessTypeId", handler.GetMenu, mid.OptionalAuthMiddleware)

	// Business type API routes
	businessTypeAPI := e.Group("/api/business-types", mid.AuthMiddleware)
	businessTypeAPI.POST("", handler.CreateBusinessType)
	businessTypeAPI.GET("", handler.ListBusinessTypes)
	businessTypeAPI.GET("/:id", handler.GetBusinessType)
	businessTypeAPI.DELETE("/:id", handler.DeleteBusinessType)
	businessTypeAPI.POST("/:id/base-route", handler.SetBaseRoute)
	businessTypeAPI.GET("/:id/base-route", handler.GetBaseRoute)

	// Section and menu item API routes
	sectionAPI := e.Group("/api/sections", mid.AuthMiddleware)
	sectionAPI.POST("", handler.CreateSection)
	sectionAPI.GET("", handler.ListSections)
	sectionAPI.DELETE("/:id", handler.DeleteSection)
	sectionAPI.POST("/:id/items", handler.CreateMenuItem)

	itemAPI := e.Group("/api/items", mid.AuthMiddleware)
	itemAPI.DELETE("/:id", handler.DeleteMenuItem)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
