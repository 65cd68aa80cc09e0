package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

// AboutService defines the interface for the About page content
type AboutService interface {
	Get(ctx context.Context) (*models.AboutContent, error)
	Update(ctx context.Context, update AboutUpdate) (*models.AboutContent, error)
}

// AboutUpdate is a partial update; nil fields are kept
type AboutUpdate struct {
	Title        *string
	Subtitle     *string
	Mission      *string
	ContactEmail *string
}

type aboutService struct {
	aboutRepo repository.AboutRepository
	logger    *slog.Logger
}

// NewAboutService creates a new about service instance
func NewAboutService(aboutRepo repository.AboutRepository, logger *slog.Logger) AboutService {
	return &aboutService{
		aboutRepo: aboutRepo,
		logger:    logger,
	}
}

// Get returns the current content, storing the default on first read
func (s *aboutService) Get(ctx context.Context) (*models.AboutContent, error) {
	content, err := s.aboutRepo.Latest(ctx)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, repository.ErrAboutContentNotFound) {
		s.logger.Error("❌ [AboutService] Database error", "error", err)
		return nil, err
	}

	content = models.DefaultAboutContent()
	if err := s.aboutRepo.Create(ctx, content); err != nil {
		s.logger.Error("❌ [AboutService] Failed to create default content", "error", err)
		return nil, err
	}

	s.logger.Info("📝 [AboutService] Created default about content", "id", content.ID)
	return content, nil
}

func (s *aboutService) Update(ctx context.Context, update AboutUpdate) (*models.AboutContent, error) {
	content, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, NewValidationError("title", "must not be empty")
		}
		content.Title = title
	}
	if update.Subtitle != nil {
		content.Subtitle = strings.TrimSpace(*update.Subtitle)
	}
	if update.Mission != nil {
		content.Mission = strings.TrimSpace(*update.Mission)
	}
	if update.ContactEmail != nil {
		content.ContactEmail = strings.TrimSpace(*update.ContactEmail)
	}

	if err := s.aboutRepo.Save(ctx, content); err != nil {
		s.logger.Error("❌ [AboutService] Failed to save content", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AboutService] About content updated", "id", content.ID)
	return content, nil
}
