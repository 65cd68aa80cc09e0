package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
)

// ProjectHandler handles HTTP requests for the catalog
type ProjectHandler struct {
	baseHandler
	service service.CatalogService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service service.CatalogService, cfg *config.Config, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		baseHandler: baseHandler{logger: logger, exposeErrors: cfg.IsDevelopment()},
		service:     service,
	}
}

// Request DTOs
type CreateProjectRequest struct {
	Title   string `json:"title" binding:"required,max=500"`
	Author  string `json:"author" binding:"required,max=255"`
	Year    int    `json:"year" binding:"required,gte=1900,lte=2100"`
	Field   string `json:"field" binding:"required,max=255"`
	FileURL string `json:"fileUrl" binding:"required,url,max=2048"`
}

type UpdateProjectRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=500"`
	Author  *string `json:"author" binding:"omitempty,max=255"`
	Year    *int    `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	Field   *string `json:"field" binding:"omitempty,max=255"`
	FileURL *string `json:"fileUrl" binding:"omitempty,url,max=2048"`
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter, err := parseProjectFilter(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if filter.IncludeDeleted, err = queryBool(c, "includeDeleted"); err != nil {
		h.handleServiceError(c, err)
		return
	}
	page, err := parsePagination(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if filter.IncludeDeleted && !middleware.IsAdmin(c) {
		h.logger.Warn("⚠️ [ProjectHandler] includeDeleted requested without admin role")
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Only admins can list deleted projects")
		return
	}

	result, err := h.service.ListProjects(c.Request.Context(), filter, page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapPage(result, mapProjectToResponse))
}

// ListTrash handles GET /api/projects/trash
func (h *ProjectHandler) ListTrash(c *gin.Context) {
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

	result, err := h.service.ListTrash(c.Request.Context(), filter, page)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapPage(result, mapProjectToResponse))
}

// GetProject handles GET /api/projects/:id. Trashed projects are only
// visible to admins.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	project, err := h.service.GetProject(c.Request.Context(), id, middleware.IsAdmin(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapProjectToResponse(project))
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	project, err := h.service.CreateProject(c.Request.Context(), userID, service.ProjectInput{
		Title:   req.Title,
		Author:  req.Author,
		Year:    req.Year,
		Field:   req.Field,
		FileURL: req.FileURL,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "Project created", mapProjectToResponse(project))
}

// UpdateProject handles PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	var req UpdateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.service.UpdateProject(c.Request.Context(), id, repository.ProjectChanges{
		Title:   req.Title,
		Author:  req.Author,
		Year:    req.Year,
		Field:   req.Field,
		FileURL: req.FileURL,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Project updated", mapProjectToResponse(project))
}

// DeleteProject handles DELETE /api/projects/:id?permanent=
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	permanent, err := queryBool(c, "permanent")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), id, permanent); err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Project moved to trash"
	if permanent {
		message = "Project permanently deleted"
	}
	response.SuccessMessage(c, http.StatusOK, message, gin.H{"id": id, "permanent": permanent})
}

// RestoreProject handles POST /api/projects/:id/restore
func (h *ProjectHandler) RestoreProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	project, err := h.service.RestoreProject(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Project restored", mapProjectToResponse(project))
}
