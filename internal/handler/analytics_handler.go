package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler handles HTTP requests for the admin dashboard
type AnalyticsHandler struct {
	baseHandler
	service service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service service.AnalyticsService, cfg *config.Config, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		service:     service,
	}
}

// Overview handles GET /api/analytics/overview
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}

// ProjectsByField handles GET /api/analytics/projects-by-field
func (h *AnalyticsHandler) ProjectsByField(c *gin.Context) {
	rows, err := h.service.ProjectsByField(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// ProjectsByYear handles GET /api/analytics/projects-by-year
func (h *AnalyticsHandler) ProjectsByYear(c *gin.Context) {
	rows, err := h.service.ProjectsByYear(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// TopSaved handles GET /api/analytics/top-saved?limit=
func (h *AnalyticsHandler) TopSaved(c *gin.Context) {
	limit, err := queryPositive(c, "limit")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	rows, err := h.service.TopSaved(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// Export handles GET /api/analytics/export
func (h *AnalyticsHandler) Export(c *gin.Context) {
	workbook, err := h.service.ExportWorkbook(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("capstone-analytics-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
