package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

const (
	MinProjectYear = 1900
	MaxProjectYear = 2100
)

// CatalogService defines the interface for catalog queries and the project lifecycle
type CatalogService interface {
	// Queries
	ListProjects(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.Project], error)
	ListTrash(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.Project], error)
	GetProject(ctx context.Context, id uint, includeDeleted bool) (*models.Project, error)

	// Mutations
	CreateProject(ctx context.Context, uploaderID uint, input ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint, changes repository.ProjectChanges) (*models.Project, error)

	// Lifecycle
	DeleteProject(ctx context.Context, id uint, permanent bool) error
	RestoreProject(ctx context.Context, id uint) (*models.Project, error)
}

// ProjectInput is the full set of fields of a new project
type ProjectInput struct {
	Title   string
	Author  string
	Year    int
	Field   string
	FileURL string
}

type catalogService struct {
	projectRepo repository.ProjectRepository
	cache       database.AnalyticsCache
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	projectRepo repository.ProjectRepository,
	cache database.AnalyticsCache,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		projectRepo: projectRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ==================== Queries ====================

func (s *catalogService) ListProjects(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.Project], error) {
	filter.OnlyDeleted = false
	return s.list(ctx, filter, page)
}

func (s *catalogService) ListTrash(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.Project], error) {
	filter.OnlyDeleted = true
	return s.list(ctx, filter, page)
}

func (s *catalogService) list(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.Project], error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	page, err := NormalizePagination(page.Page, page.Limit)
	if err != nil {
		return nil, err
	}

	projects, total, err := s.projectRepo.List(ctx, filter, page)
	if err != nil {
		s.logger.Error("❌ [CatalogService] Failed to list projects", "error", err)
		return nil, err
	}

	s.logger.Debug("📚 [CatalogService] Listed projects",
		"total", total,
		"page", page.Page,
		"limit", page.Limit,
		"only_deleted", filter.OnlyDeleted,
	)
	return NewPage(projects, total, page), nil
}

// GetProject hides trashed projects unless includeDeleted is set
func (s *catalogService) GetProject(ctx context.Context, id uint, includeDeleted bool) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	if project.IsTrashed() && !includeDeleted {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// ==================== Mutations ====================

func (s *catalogService) CreateProject(ctx context.Context, uploaderID uint, input ProjectInput) (*models.Project, error) {
	s.logger.Info("📄 [CatalogService] Creating project",
		"title", input.Title,
		"author", input.Author,
		"uploader_id", uploaderID,
	)

	project := &models.Project{
		Title:      strings.TrimSpace(input.Title),
		Author:     strings.TrimSpace(input.Author),
		Year:       input.Year,
		Field:      strings.TrimSpace(input.Field),
		FileURL:    strings.TrimSpace(input.FileURL),
		UploadedBy: uploaderID,
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectAlreadyExists) {
			s.logger.Warn("⚠️ [CatalogService] Duplicate project", "title", project.Title, "author", project.Author)
		}
		return nil, s.mapRepoError(err)
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	created, err := s.projectRepo.FindByID(ctx, project.ID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	s.logger.Info("✅ [CatalogService] Project created", "project_id", created.ID)
	return created, nil
}

func (s *catalogService) UpdateProject(ctx context.Context, id uint, changes repository.ProjectChanges) (*models.Project, error) {
	s.logger.Info("✏️ [CatalogService] Updating project", "project_id", id)

	changes = trimChanges(changes)
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.Info("✅ [CatalogService] Project updated", "project_id", id)
	return project, nil
}

// ==================== Lifecycle ====================

// DeleteProject moves an active project to the trash, or removes the row
// entirely when permanent is set.
func (s *catalogService) DeleteProject(ctx context.Context, id uint, permanent bool) error {
	s.logger.Info("🗑️ [CatalogService] Deleting project", "project_id", id, "permanent", permanent)

	var err error
	if permanent {
		err = s.projectRepo.HardDelete(ctx, id)
	} else {
		err = s.projectRepo.SoftDelete(ctx, id, time.Now())
	}
	if err != nil {
		return s.mapRepoError(err)
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.Info("✅ [CatalogService] Project deleted", "project_id", id, "permanent", permanent)
	return nil
}

func (s *catalogService) RestoreProject(ctx context.Context, id uint) (*models.Project, error) {
	s.logger.Info("♻️ [CatalogService] Restoring project", "project_id", id)

	if err := s.projectRepo.Restore(ctx, id); err != nil {
		return nil, s.mapRepoError(err)
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	s.logger.Info("✅ [CatalogService] Project restored", "project_id", id)
	return project, nil
}

// ==================== Helpers ====================

func (s *catalogService) mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repository.ErrProjectAlreadyExists):
		return ErrProjectAlreadyExists
	case errors.Is(err, repository.ErrProjectAlreadyTrashed), errors.Is(err, repository.ErrProjectNotTrashed):
		s.logger.Warn("⚠️ [CatalogService] Invalid lifecycle transition", "error", err)
		return ErrInvalidState
	default:
		s.logger.Error("❌ [CatalogService] Database error", "error", err)
		return err
	}
}

func validateProject(p *models.Project) error {
	switch {
	case p.Title == "":
		return NewValidationError("title", "is required")
	case p.Author == "":
		return NewValidationError("author", "is required")
	case p.Field == "":
		return NewValidationError("field", "is required")
	case p.FileURL == "":
		return NewValidationError("fileUrl", "is required")
	case p.Year < MinProjectYear || p.Year > MaxProjectYear:
		return NewValidationError("year", "must be between 1900 and 2100")
	}
	return nil
}

func trimChanges(c repository.ProjectChanges) repository.ProjectChanges {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	c.Title = trim(c.Title)
	c.Author = trim(c.Author)
	c.Field = trim(c.Field)
	c.FileURL = trim(c.FileURL)
	return c
}

func validateChanges(c repository.ProjectChanges) error {
	switch {
	case c.Title != nil && *c.Title == "":
		return NewValidationError("title", "must not be empty")
	case c.Author != nil && *c.Author == "":
		return NewValidationError("author", "must not be empty")
	case c.Field != nil && *c.Field == "":
		return NewValidationError("field", "must not be empty")
	case c.FileURL != nil && *c.FileURL == "":
		return NewValidationError("fileUrl", "must not be empty")
	case c.Year != nil && (*c.Year < MinProjectYear || *c.Year > MaxProjectYear):
		return NewValidationError("year", "must be between 1900 and 2100")
	}
	return nil
}
