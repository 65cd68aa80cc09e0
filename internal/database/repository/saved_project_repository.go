package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
)

// SavedProjectRepository defines the interface for bookmark data operations
type SavedProjectRepository interface {
	Create(ctx context.Context, saved *models.SavedProject) error
	Delete(ctx context.Context, userID, projectID uint) error
	Find(ctx context.Context, userID, projectID uint) (*models.SavedProject, error)
	Exists(ctx context.Context, userID, projectID uint) (bool, error)

	// ListByUser returns the user's bookmarks whose project is active and
	// matches the filter, newest bookmark first.
	ListByUser(ctx context.Context, userID uint, filter ProjectFilter, page Pagination) ([]models.SavedProject, int64, error)
}

type savedProjectRepository struct {
	db *gorm.DB
}

// NewSavedProjectRepository creates a new saved project repository instance
func NewSavedProjectRepository(db *gorm.DB) SavedProjectRepository {
	return &savedProjectRepository{db: db}
}

func (r *savedProjectRepository) Create(ctx context.Context, saved *models.SavedProject) error {
	err := r.db.WithContext(ctx).Omit("User", "Project").Create(saved).Error
	if database.IsUniqueViolation(err) {
		return ErrAlreadySaved
	}
	return err
}

func (r *savedProjectRepository) Delete(ctx context.Context, userID, projectID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.SavedProject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedProjectNotFound
	}
	return nil
}

func (r *savedProjectRepository) Find(ctx context.Context, userID, projectID uint) (*models.SavedProject, error) {
	var saved models.SavedProject
	err := r.db.WithContext(ctx).
		Preload("Project.Uploader").
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedProjectNotFound
		}
		return nil, err
	}
	return &saved, nil
}

func (r *savedProjectRepository) Exists(ctx context.Context, userID, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedProject{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *savedProjectRepository) ListByUser(ctx context.Context, userID uint, filter ProjectFilter, page Pagination) ([]models.SavedProject, int64, error) {
	var saved []models.SavedProject
	var total int64

	filter.IncludeDeleted = false
	filter.OnlyDeleted = false

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.SavedProject{}).
			Joins("JOIN projects ON projects.id = saved_projects.project_id").
			Where("saved_projects.user_id = ?", userID)
		return applyProjectFilter(q, filter)
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scoped().
		Preload("Project.Uploader").
		Order("saved_projects.created_at DESC").
		Order("saved_projects.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&saved).Error

	return saved, total, err
}

// Repository errors
var (
	ErrSavedProjectNotFound = errors.New("saved project not found")
	ErrAlreadySaved         = errors.New("project already saved")
)
