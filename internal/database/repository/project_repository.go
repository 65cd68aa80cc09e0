package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
)

// ProjectChanges is a partial update of a project; nil fields are left alone
type ProjectChanges struct {
	Title   *string
	Author  *string
	Year    *int
	Field   *string
	FileURL *string
}

// IsEmpty reports whether no field is set
func (c ProjectChanges) IsEmpty() bool {
	return c.Title == nil && c.Author == nil && c.Year == nil && c.Field == nil && c.FileURL == nil
}

func (c ProjectChanges) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if c.Title != nil {
		updates["title"] = *c.Title
	}
	if c.Author != nil {
		updates["author"] = *c.Author
	}
	if c.Year != nil {
		updates["year"] = *c.Year
	}
	if c.Field != nil {
		updates["field"] = *c.Field
	}
	if c.FileURL != nil {
		updates["file_url"] = *c.FileURL
	}
	return updates
}

// ProjectRepository defines the interface for catalog data operations
type ProjectRepository interface {
	// CRUD operations
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, id uint, changes ProjectChanges) (*models.Project, error)

	// Lifecycle transitions
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	Restore(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context, filter ProjectFilter, page Pagination) ([]models.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// ==================== CRUD Operations ====================

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Omit("Uploader").Create(project).Error
	if database.IsUniqueViolation(err) {
		return ErrProjectAlreadyExists
	}
	return err
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, id uint, changes ProjectChanges) (*models.Project, error) {
	if !changes.IsEmpty() {
		result := r.db.WithContext(ctx).Model(&models.Project{}).
			Where("id = ?", id).
			Updates(changes.columns())
		if result.Error != nil {
			if database.IsUniqueViolation(result.Error) {
				return nil, ErrProjectAlreadyExists
			}
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrProjectNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// ==================== Lifecycle Transitions ====================

// SoftDelete moves an active project to the trash
func (r *projectRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.transitionMiss(ctx, id, ErrProjectAlreadyTrashed)
	}
	return nil
}

// Restore moves a trashed project back to the catalog
func (r *projectRepository) Restore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.transitionMiss(ctx, id, ErrProjectNotTrashed)
	}
	return nil
}

// HardDelete removes the project and its bookmarks regardless of state
func (r *projectRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.SavedProject{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// transitionMiss tells a missing row apart from a row in the wrong state
func (r *projectRepository) transitionMiss(ctx context.Context, id uint, stateErr error) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return stateErr
}

// ==================== Query Operations ====================

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter, page Pagination) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	baseQuery := applyProjectFilter(r.db.WithContext(ctx).Model(&models.Project{}), filter)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyProjectFilter(r.db.WithContext(ctx).Model(&models.Project{}), filter).
		Preload("Uploader").
		Order("projects.created_at DESC").
		Order("projects.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&projects).Error

	return projects, total, err
}

// Repository errors
var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectAlreadyExists  = errors.New("project with this title and author already exists")
	ErrProjectAlreadyTrashed = errors.New("project is already in the trash")
	ErrProjectNotTrashed     = errors.New("project is not in the trash")
)
