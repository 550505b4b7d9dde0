package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dietdesk/backend/config"
	httpDelivery "github.com/dietdesk/backend/internal/delivery/http"
	"github.com/dietdesk/backend/internal/domain"
	"github.com/dietdesk/backend/internal/infrastructure/cache"
	"github.com/dietdesk/backend/internal/infrastructure/usda"
	"github.com/dietdesk/backend/internal/usecase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting DietDesk backend",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	// Left nil without an API key so the food endpoints answer 503
	var foodSource domain.USDAClient
	if cfg.FoodDatabaseEnabled() {
		client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL,
			usda.WithTimeout(cfg.USDA.Timeout),
			usda.WithRequestsPerHour(cfg.USDA.RequestsPerHour),
			usda.WithLogger(logger.Named("usda")),
		)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		foodSource = client
		logger.Info("USDA FoodData Central configured",
			zap.String("base_url", cfg.USDA.BaseURL),
			zap.Int("requests_per_hour", cfg.USDA.RequestsPerHour),
		)
	} else {
		logger.Warn("USDA API key not configured, food endpoints are disabled")
	}

	calculatorService := usecase.NewCalculatorService(logger.Named("calculator"))
	foodService := usecase.NewFoodService(
		memoryCache,
		foodSource,
		usecase.FoodServiceConfig{
			CacheTTL:            cfg.Cache.TTL,
			EnableFuzzyMatching: true,
			EnableDebugLogging:  cfg.Server.Environment == "development",
		},
		logger.Named("foods"),
	)

	handler := httpDelivery.NewHandler(calculatorService, foodService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server exited")
}

// newLogger builds a JSON logger in production and a console logger elsewhere
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.Server.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build(zap.Fields(zap.String("service", "dietdesk-backend")))
}
