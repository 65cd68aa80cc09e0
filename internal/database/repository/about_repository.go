package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database/models"
)

// AboutRepository defines the interface for the About page content
type AboutRepository interface {
	// Latest returns the most recently updated row
	Latest(ctx context.Context) (*models.AboutContent, error)
	Create(ctx context.Context, content *models.AboutContent) error
	Save(ctx context.Context, content *models.AboutContent) error
}

type aboutRepository struct {
	db *gorm.DB
}

// NewAboutRepository creates a new about content repository instance
func NewAboutRepository(db *gorm.DB) AboutRepository {
	return &aboutRepository{db: db}
}

func (r *aboutRepository) Latest(ctx context.Context) (*models.AboutContent, error) {
	var content models.AboutContent
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAboutContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *aboutRepository) Create(ctx context.Context, content *models.AboutContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *aboutRepository) Save(ctx context.Context, content *models.AboutContent) error {
	return r.db.WithContext(ctx).Save(content).Error
}

// Repository errors
var (
	ErrAboutContentNotFound = errors.New("about content not found")
)
