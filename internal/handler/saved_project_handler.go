package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
)

// SavedProjectHandler handles HTTP requests for bookmarks
type SavedProjectHandler struct {
	baseHandler
	service service.BookmarkService
}

// NewSavedProjectHandler creates a new saved project handler
func NewSavedProjectHandler(service service.BookmarkService, cfg *config.Config, logger *slog.Logger) *SavedProjectHandler {
	return &SavedProjectHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		service:     service,
	}
}

type SaveProjectRequest struct {
	ProjectID uint `json:"projectId" binding:"required,gte=1"`
}

// ListSaved handles GET /api/saved-projects
func (h *SavedProjectHandler) ListSaved(c *gin.Context) {
	filter, err := parseProjectFilter(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	page, err := parsePagination(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	result, err := h.service.List(c.Request.Context(), userID, filter, page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapPage(result, mapSavedProjectToResponse))
}

// SaveProject handles POST /api/saved-projects
func (h *SavedProjectHandler) SaveProject(c *gin.Context) {
	var req SaveProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	saved, err := h.service.Save(c.Request.Context(), userID, req.ProjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "Project saved", mapSavedProjectToResponse(saved))
}

// UnsaveProject handles DELETE /api/saved-projects/:projectId
func (h *SavedProjectHandler) UnsaveProject(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	if err := h.service.Unsave(c.Request.Context(), userID, projectID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Project removed from saved list", gin.H{"projectId": projectID})
}

// CheckSaved handles GET /api/saved-projects/:projectId/check
func (h *SavedProjectHandler) CheckSaved(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	saved, err := h.service.IsSaved(c.Request.Context(), userID, projectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"projectId": projectID, "saved": saved})
}
