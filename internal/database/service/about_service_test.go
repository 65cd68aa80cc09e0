package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/testutil"
)

func TestAboutService_Get(t *testing.T) {
	t.Run("Stored content", func(t *testing.T) {
		repo := new(testutil.MockAboutRepository)
		repo.On("Latest", mock.Anything).Return(&models.AboutContent{ID: 2, Title: "Stored"}, nil)

		content, err := service.NewAboutService(repo, testutil.TestLogger()).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Stored", content.Title)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Default content is created on first read", func(t *testing.T) {
		repo := new(testutil.MockAboutRepository)
		repo.On("Latest", mock.Anything).Return(nil, repository.ErrAboutContentNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.AboutContent")).Return(nil)

		content, err := service.NewAboutService(repo, testutil.TestLogger()).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.DefaultAboutContent().Title, content.Title)
		repo.AssertExpectations(t)
	})
}

func TestAboutService_Update(t *testing.T) {
	tests := []struct {
		name    string
		update  service.AboutUpdate
		wantErr error
		check   func(t *testing.T, c *models.AboutContent)
	}{
		{
			name:   "Partial update keeps other fields",
			update: service.AboutUpdate{Mission: strPtr("  Keep every capstone findable ")},
			check: func(t *testing.T, c *models.AboutContent) {
				assert.Equal(t, "Keep every capstone findable", c.Mission)
				assert.Equal(t, "Stored", c.Title)
			},
		},
		{
			name:    "Blank title",
			update:  service.AboutUpdate{Title: strPtr(" ")},
			wantErr: service.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockAboutRepository)
			repo.On("Latest", mock.Anything).Return(&models.AboutContent{ID: 2, Title: "Stored", Mission: "Old"}, nil)
			repo.On("Save", mock.Anything, mock.AnythingOfType("*models.AboutContent")).Return(nil)

			content, err := service.NewAboutService(repo, testutil.TestLogger()).Update(context.Background(), tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, content)
		})
	}
}
