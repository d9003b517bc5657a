package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/convertly/currency_converter_web/internal/adapters/backend"
	googleprovider "github.com/convertly/currency_converter_web/internal/adapters/google"
	"github.com/convertly/currency_converter_web/internal/core/services"
	"github.com/convertly/currency_converter_web/internal/handlers"
	"github.com/convertly/currency_converter_web/internal/middleware"
	"github.com/convertly/currency_converter_web/internal/platform/config"
	"github.com/convertly/currency_converter_web/internal/utils"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient, cfg.DeviceModel))

	r.LoadHTMLGlob("web/templates/*.html")

	// Outbound backend client and identity provider
	backendClient := backend.NewClient(cfg, logger)
	provider := googleprovider.NewProvider(cfg)

	serviceContainer := services.NewServiceContainer(cfg, logger, backendClient, provider)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
