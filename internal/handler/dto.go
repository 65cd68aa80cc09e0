package handler

import (
	"time"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/service"
)

// ProjectResponse is a project joined with the reduced uploader view
type ProjectResponse struct {
	ID         uint                 `json:"id"`
	Title      string               `json:"title"`
	Author     string               `json:"author"`
	Year       int                  `json:"year"`
	Field      string               `json:"field"`
	FileURL    string               `json:"fileUrl"`
	UploadedBy uint                 `json:"uploadedBy"`
	Uploader   *models.UploaderView `json:"uploader"`
	IsDeleted  bool                 `json:"isDeleted"`
	DeletedAt  *time.Time           `json:"deletedAt"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// SavedProjectResponse is a bookmark with its project
type SavedProjectResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"userId"`
	ProjectID uint             `json:"projectId"`
	CreatedAt time.Time        `json:"createdAt"`
	Project   *ProjectResponse `json:"project"`
}

func mapProjectToResponse(p *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:         p.ID,
		Title:      p.Title,
		Author:     p.Author,
		Year:       p.Year,
		Field:      p.Field,
		FileURL:    p.FileURL,
		UploadedBy: p.UploadedBy,
		IsDeleted:  p.IsDeleted,
		DeletedAt:  p.DeletedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Uploader != nil {
		view := p.Uploader.AsUploader()
		resp.Uploader = &view
	}
	return resp
}

func mapSavedProjectToResponse(sp *models.SavedProject) SavedProjectResponse {
	resp := SavedProjectResponse{
		ID:        sp.ID,
		UserID:    sp.UserID,
		ProjectID: sp.ProjectID,
		CreatedAt: sp.CreatedAt,
	}
	if sp.Project != nil {
		project := mapProjectToResponse(sp.Project)
		resp.Project = &project
	}
	return resp
}

// mapPage converts the items of a page while keeping its metadata
func mapPage[T any, R any](page *service.Page[T], convert func(*T) R) *service.Page[R] {
	items := make([]R, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, convert(&page.Items[i]))
	}
	return &service.Page[R]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	}
}
