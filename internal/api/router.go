package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/handler"
	"github.com/capstone-archive/backend-go/internal/middleware"
)

// Handlers groups everything the route table dispatches to
type Handlers struct {
	Auth         *handler.AuthHandler
	Project      *handler.ProjectHandler
	SavedProject *handler.SavedProjectHandler
	About        *handler.AboutHandler
	Analytics    *handler.AnalyticsHandler
	Upload       *handler.UploadHandler
}

// SetupRouter builds the gin engine with the full route table
func SetupRouter(
	cfg *config.Config,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidator()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("❌ [Router] Invalid trusted proxies, using the direct peer address",
			"trusted_proxies", cfg.TrustedProxies,
			"error", err,
		)
		_ = r.SetTrustedProxies(nil)
	}
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins, logger))

	r.NoRoute(handler.NotFound)
	r.NoMethod(handler.MethodNotAllowed)

	// Public routes
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/health", handler.Health)

	requireAdmin := authMiddleware.RequireRole(models.RoleAdmin)
	authLimit := func(scope string) gin.HandlerFunc {
		return middleware.RateLimit(rateLimiter, scope, logger)
	}

	// Auth routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", authLimit("login"), h.Auth.Login)
		authGroup.POST("/admin/login", authLimit("login"), h.Auth.AdminLogin)
		authGroup.GET("/me", authMiddleware.RequireAuth(), h.Auth.Me)
		authGroup.POST("/forgot-password", authLimit("forgot-password"), h.Auth.ForgotPassword)
		authGroup.POST("/reset-password", authLimit("reset-password"), h.Auth.ResetPassword)
	}

	// Catalog routes
	projects := r.Group("/api/projects")
	{
		projects.GET("", authMiddleware.OptionalAuth(), h.Project.ListProjects)
		projects.GET("/trash", authMiddleware.RequireAuth(), requireAdmin, h.Project.ListTrash)
		projects.GET("/:id", authMiddleware.OptionalAuth(), h.Project.GetProject)

		admin := projects.Group("", authMiddleware.RequireAuth(), requireAdmin)
		admin.POST("", h.Project.CreateProject)
		admin.POST("/upload-url", h.Upload.CreateUploadURL)
		admin.PUT("/:id", h.Project.UpdateProject)
		admin.DELETE("/:id", h.Project.DeleteProject)
		admin.POST("/:id/restore", h.Project.RestoreProject)
	}

	// Bookmark routes
	saved := r.Group("/api/saved-projects", authMiddleware.RequireAuth())
	{
		saved.GET("", h.SavedProject.ListSaved)
		saved.POST("", h.SavedProject.SaveProject)
		saved.DELETE("/:projectId", h.SavedProject.UnsaveProject)
		saved.GET("/:projectId/check", h.SavedProject.CheckSaved)
	}

	// About page
	r.GET("/api/about", h.About.GetAbout)
	r.PUT("/api/about", authMiddleware.RequireAuth(), requireAdmin, h.About.UpdateAbout)

	// Analytics (admin)
	analytics := r.Group("/api/analytics", authMiddleware.RequireAuth(), requireAdmin)
	{
		analytics.GET("/overview", h.Analytics.Overview)
		analytics.GET("/projects-by-field", h.Analytics.ProjectsByField)
		analytics.GET("/projects-by-year", h.Analytics.ProjectsByYear)
		analytics.GET("/top-saved", h.Analytics.TopSaved)
		analytics.GET("/export", h.Analytics.Export)
	}

	return r
}
