package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

// BookmarkService defines the interface for a student's saved projects
type BookmarkService interface {
	Save(ctx context.Context, userID, projectID uint) (*models.SavedProject, error)
	Unsave(ctx context.Context, userID, projectID uint) error
	IsSaved(ctx context.Context, userID, projectID uint) (bool, error)
	List(ctx context.Context, userID uint, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.SavedProject], error)
}

type bookmarkService struct {
	savedRepo   repository.SavedProjectRepository
	projectRepo repository.ProjectRepository
	cache       database.AnalyticsCache
	logger      *slog.Logger
}

// NewBookmarkService creates a new bookmark service instance
func NewBookmarkService(
	savedRepo repository.SavedProjectRepository,
	projectRepo repository.ProjectRepository,
	cache database.AnalyticsCache,
	logger *slog.Logger,
) BookmarkService {
	return &bookmarkService{
		savedRepo:   savedRepo,
		projectRepo: projectRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Save bookmarks any existing project, trashed ones included
func (s *bookmarkService) Save(ctx context.Context, userID, projectID uint) (*models.SavedProject, error) {
	s.logger.Info("🔖 [BookmarkService] Saving project", "user_id", userID, "project_id", projectID)

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			s.logger.Warn("⚠️ [BookmarkService] Project not found", "project_id", projectID)
			return nil, ErrProjectNotFound
		}
		s.logger.Error("❌ [BookmarkService] Database error", "error", err)
		return nil, err
	}

	saved := &models.SavedProject{
		UserID:    userID,
		ProjectID: projectID,
	}
	if err := s.savedRepo.Create(ctx, saved); err != nil {
		if errors.Is(err, repository.ErrAlreadySaved) {
			s.logger.Warn("⚠️ [BookmarkService] Project already saved", "user_id", userID, "project_id", projectID)
			return nil, ErrAlreadySaved
		}
		s.logger.Error("❌ [BookmarkService] Failed to save project", "error", err)
		return nil, err
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	result, err := s.savedRepo.Find(ctx, userID, projectID)
	if err != nil {
		s.logger.Error("❌ [BookmarkService] Failed to load saved project", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [BookmarkService] Project saved", "saved_id", result.ID)
	return result, nil
}

func (s *bookmarkService) Unsave(ctx context.Context, userID, projectID uint) error {
	s.logger.Info("🔖 [BookmarkService] Removing saved project", "user_id", userID, "project_id", projectID)

	if err := s.savedRepo.Delete(ctx, userID, projectID); err != nil {
		if errors.Is(err, repository.ErrSavedProjectNotFound) {
			s.logger.Warn("⚠️ [BookmarkService] Saved project not found", "user_id", userID, "project_id", projectID)
			return ErrSavedProjectNotFound
		}
		s.logger.Error("❌ [BookmarkService] Failed to remove saved project", "error", err)
		return err
	}

	invalidateAnalytics(ctx, s.cache, s.logger)

	s.logger.Info("✅ [BookmarkService] Saved project removed", "user_id", userID, "project_id", projectID)
	return nil
}

func (s *bookmarkService) IsSaved(ctx context.Context, userID, projectID uint) (bool, error) {
	saved, err := s.savedRepo.Exists(ctx, userID, projectID)
	if err != nil {
		s.logger.Error("❌ [BookmarkService] Database error", "error", err)
		return false, err
	}
	return saved, nil
}

// List applies the catalog filter to the user's bookmarks. Trashed projects
// are always left out while their bookmark rows are kept.
func (s *bookmarkService) List(ctx context.Context, userID uint, filter repository.ProjectFilter, page repository.Pagination) (*Page[models.SavedProject], error) {
	filter.IncludeDeleted = false
	filter.OnlyDeleted = false
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	page, err := NormalizePagination(page.Page, page.Limit)
	if err != nil {
		return nil, err
	}

	saved, total, err := s.savedRepo.ListByUser(ctx, userID, filter, page)
	if err != nil {
		s.logger.Error("❌ [BookmarkService] Failed to list saved projects", "error", err)
		return nil, err
	}

	return NewPage(saved, total, page), nil
}
