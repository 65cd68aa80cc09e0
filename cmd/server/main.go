package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/capstone-archive/backend-go/internal/api"
	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/handler"
	"github.com/capstone-archive/backend-go/internal/logger"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/storage"
	"github.com/capstone-archive/backend-go/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	if err := cfg.Validate(); err != nil {
		appLogger.Error("❌ Invalid configuration", "error", err)
		os.Exit(1)
	}

	appLogger.Info("🚀 [Server] Starting Capstone Archive API...",
		"environment", cfg.AppEnv,
		"port", cfg.ApiServicePort,
	)

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Warn("⚠️ Failed to close database", "error", err)
		}
	}()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	savedRepo := repository.NewSavedProjectRepository(db)
	aboutRepo := repository.NewAboutRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// 5. Initialize Redis (analytics cache + rate limiter)
	var analyticsCache database.AnalyticsCache
	var rateLimiter middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis", "error", err)
		appLogger.Info("💡 Analytics will be computed on every request and rate limiting is disabled")
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	} else {
		defer redisClient.Close()
		analyticsCache = redisClient
		rateLimiter = middleware.NewRateLimiter(
			redisClient.GetClient(),
			cfg.AuthRateLimit,
			time.Duration(cfg.AuthRateWindow)*time.Second,
			appLogger,
		)
	}

	// 6. Initialize Object Storage
	var presigner storage.Presigner
	if cfg.StorageEnabled() {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg, appLogger)
		if err != nil {
			appLogger.Warn("⚠️ Failed to initialize S3 storage, uploads disabled", "error", err)
		} else {
			presigner = s3Storage
		}
	} else {
		appLogger.Info("💡 S3_BUCKET not set, presigned uploads disabled")
	}

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, cfg, appLogger)
	catalogService := service.NewCatalogService(projectRepo, analyticsCache, appLogger)
	bookmarkService := service.NewBookmarkService(savedRepo, projectRepo, analyticsCache, appLogger)
	aboutService := service.NewAboutService(aboutRepo, appLogger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, analyticsCache, appLogger)

	// 8. Background workers
	pool := worker.NewPool(appLogger)
	worker.StartResetTokenJanitor(pool, authService, time.Duration(cfg.ResetTokenSweepInterval)*time.Second)

	// 9. Initialize Handlers & Middleware
	handlers := api.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg, appLogger),
		Project:      handler.NewProjectHandler(catalogService, cfg, appLogger),
		SavedProject: handler.NewSavedProjectHandler(bookmarkService, cfg, appLogger),
		About:        handler.NewAboutHandler(aboutService, cfg, appLogger),
		Analytics:    handler.NewAnalyticsHandler(analyticsService, cfg, appLogger),
		Upload:       handler.NewUploadHandler(presigner, cfg, appLogger),
	}
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	r := api.SetupRouter(cfg, handlers, authMiddleware, rateLimiter, appLogger)

	// 10. Start HTTP Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("🌍 [Server] HTTP Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("❌ HTTP Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 11. Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	appLogger.Info("🛑 [Server] Shutting down...", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("❌ Server forced to shutdown", "error", err)
	}
	pool.Shutdown(10 * time.Second)

	appLogger.Info("👋 [Server] Stopped")
}
