package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/response"
)

// AboutHandler handles HTTP requests for the About page
type AboutHandler struct {
	baseHandler
	service service.AboutService
}

// NewAboutHandler creates a new about handler
func NewAboutHandler(service service.AboutService, cfg *config.Config, logger *slog.Logger) *AboutHandler {
	return &AboutHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		service:     service,
	}
}

type UpdateAboutRequest struct {
	Title        *string `json:"title" binding:"omitempty,max=255"`
	Subtitle     *string `json:"subtitle" binding:"omitempty,max=500"`
	Mission      *string `json:"mission"`
	ContactEmail *string `json:"contactEmail" binding:"omitempty,email,max=255"`
}

// GetAbout handles GET /api/about
func (h *AboutHandler) GetAbout(c *gin.Context) {
	content, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, content)
}

// UpdateAbout handles PUT /api/about
func (h *AboutHandler) UpdateAbout(c *gin.Context) {
	var req UpdateAboutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	content, err := h.service.Update(c.Request.Context(), service.AboutUpdate{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Mission:      req.Mission,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "About content updated", content)
}
