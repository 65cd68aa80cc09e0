package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database/models"
)

// AnalyticsRepository defines the read-only aggregate queries of the dashboard
type AnalyticsRepository interface {
	Overview(ctx context.Context, recentSince time.Time) (*models.AnalyticsOverview, error)
	ProjectsByField(ctx context.Context) ([]models.FieldCount, error)
	ProjectsByYear(ctx context.Context) ([]models.YearCount, error)
	TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Overview(ctx context.Context, recentSince time.Time) (*models.AnalyticsOverview, error) {
	db := r.db.WithContext(ctx)
	var overview models.AnalyticsOverview

	counts := []struct {
		target *int64
		query  *gorm.DB
	}{
		{&overview.ActiveProjects, db.Model(&models.Project{}).Where("is_deleted = ?", false)},
		{&overview.TrashedProjects, db.Model(&models.Project{}).Where("is_deleted = ?", true)},
		{&overview.Students, db.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&overview.Admins, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin)},
		{&overview.SavedProjects, db.Model(&models.SavedProject{})},
		{&overview.RecentProjects, db.Model(&models.Project{}).Where("is_deleted = ? AND created_at >= ?", false, recentSince)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.target).Error; err != nil {
			return nil, err
		}
	}

	return &overview, nil
}

func (r *analyticsRepository) ProjectsByField(ctx context.Context) ([]models.FieldCount, error) {
	var rows []models.FieldCount
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("field, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("field").
		Order("count DESC").
		Order("field ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) ProjectsByYear(ctx context.Context) ([]models.YearCount, error) {
	var rows []models.YearCount
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("year, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("year").
		Order("year ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error) {
	var rows []models.SavedCount
	err := r.db.WithContext(ctx).Model(&models.SavedProject{}).
		Select("projects.id AS project_id, projects.title, projects.author, projects.field, projects.year, COUNT(saved_projects.id) AS count").
		Joins("JOIN projects ON projects.id = saved_projects.project_id").
		Where("projects.is_deleted = ?", false).
		Group("projects.id, projects.title, projects.author, projects.field, projects.year").
		Order("count DESC").
		Order("projects.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
