package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/storage"
)

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	args := m.Called(ctx, id, token, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CompletePasswordReset(ctx context.Context, id uint, token, passwordHash string, now time.Time) error {
	args := m.Called(ctx, id, token, passwordHash, now)
	return args.Error(0)
}

func (m *MockUserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK PROJECT REPOSITORY ====================

// MockProjectRepository implements repository.ProjectRepository for testing
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, id uint, changes repository.ProjectChanges) (*models.Project, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockProjectRepository) Restore(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) HardDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) List(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) ([]models.Project, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Project), args.Get(1).(int64), args.Error(2)
}

// ==================== MOCK SAVED PROJECT REPOSITORY ====================

// MockSavedProjectRepository implements repository.SavedProjectRepository for testing
type MockSavedProjectRepository struct {
	mock.Mock
}

func (m *MockSavedProjectRepository) Create(ctx context.Context, saved *models.SavedProject) error {
	args := m.Called(ctx, saved)
	return args.Error(0)
}

func (m *MockSavedProjectRepository) Delete(ctx context.Context, userID, projectID uint) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *MockSavedProjectRepository) Find(ctx context.Context, userID, projectID uint) (*models.SavedProject, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedProject), args.Error(1)
}

func (m *MockSavedProjectRepository) Exists(ctx context.Context, userID, projectID uint) (bool, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedProjectRepository) ListByUser(ctx context.Context, userID uint, filter repository.ProjectFilter, page repository.Pagination) ([]models.SavedProject, int64, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.SavedProject), args.Get(1).(int64), args.Error(2)
}

// ==================== MOCK ABOUT REPOSITORY ====================

// MockAboutRepository implements repository.AboutRepository for testing
type MockAboutRepository struct {
	mock.Mock
}

func (m *MockAboutRepository) Latest(ctx context.Context) (*models.AboutContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AboutContent), args.Error(1)
}

func (m *MockAboutRepository) Create(ctx context.Context, content *models.AboutContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockAboutRepository) Save(ctx context.Context, content *models.AboutContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

// ==================== MOCK ANALYTICS REPOSITORY ====================

// MockAnalyticsRepository implements repository.AnalyticsRepository for testing
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) Overview(ctx context.Context, recentSince time.Time) (*models.AnalyticsOverview, error) {
	args := m.Called(ctx, recentSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsOverview), args.Error(1)
}

func (m *MockAnalyticsRepository) ProjectsByField(ctx context.Context) ([]models.FieldCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldCount), args.Error(1)
}

func (m *MockAnalyticsRepository) ProjectsByYear(ctx context.Context) ([]models.YearCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.YearCount), args.Error(1)
}

func (m *MockAnalyticsRepository) TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedCount), args.Error(1)
}

// ==================== MOCK ANALYTICS CACHE ====================

// MockAnalyticsCache implements database.AnalyticsCache for testing
type MockAnalyticsCache struct {
	mock.Mock
}

func (m *MockAnalyticsCache) GetAnalytics(ctx context.Context, view string, dest any) (int64, bool, error) {
	args := m.Called(ctx, view, dest)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockAnalyticsCache) SetAnalytics(ctx context.Context, gen int64, view string, value any) error {
	args := m.Called(ctx, gen, view, value)
	return args.Error(0)
}

func (m *MockAnalyticsCache) InvalidateAnalytics(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAnalyticsCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ==================== MOCK AUTH SERVICE ====================

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, portal models.Role) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password, portal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateAccessToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	args := m.Called(ctx, tokenString, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ==================== MOCK CATALOG SERVICE ====================

// MockCatalogService implements service.CatalogService for testing
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProjects(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*service.Page[models.Project], error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[models.Project]), args.Error(1)
}

func (m *MockCatalogService) ListTrash(ctx context.Context, filter repository.ProjectFilter, page repository.Pagination) (*service.Page[models.Project], error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[models.Project]), args.Error(1)
}

func (m *MockCatalogService) GetProject(ctx context.Context, id uint, includeDeleted bool) (*models.Project, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockCatalogService) CreateProject(ctx context.Context, uploaderID uint, input service.ProjectInput) (*models.Project, error) {
	args := m.Called(ctx, uploaderID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockCatalogService) UpdateProject(ctx context.Context, id uint, changes repository.ProjectChanges) (*models.Project, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockCatalogService) DeleteProject(ctx context.Context, id uint, permanent bool) error {
	args := m.Called(ctx, id, permanent)
	return args.Error(0)
}

func (m *MockCatalogService) RestoreProject(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

// ==================== MOCK BOOKMARK SERVICE ====================

// MockBookmarkService implements service.BookmarkService for testing
type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) Save(ctx context.Context, userID, projectID uint) (*models.SavedProject, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedProject), args.Error(1)
}

func (m *MockBookmarkService) Unsave(ctx context.Context, userID, projectID uint) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *MockBookmarkService) IsSaved(ctx context.Context, userID, projectID uint) (bool, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkService) List(ctx context.Context, userID uint, filter repository.ProjectFilter, page repository.Pagination) (*service.Page[models.SavedProject], error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[models.SavedProject]), args.Error(1)
}

// ==================== MOCK ABOUT SERVICE ====================

// MockAboutService implements service.AboutService for testing
type MockAboutService struct {
	mock.Mock
}

func (m *MockAboutService) Get(ctx context.Context) (*models.AboutContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AboutContent), args.Error(1)
}

func (m *MockAboutService) Update(ctx context.Context, update service.AboutUpdate) (*models.AboutContent, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AboutContent), args.Error(1)
}

// ==================== MOCK ANALYTICS SERVICE ====================

// MockAnalyticsService implements service.AnalyticsService for testing
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsOverview), args.Error(1)
}

func (m *MockAnalyticsService) ProjectsByField(ctx context.Context) ([]models.FieldCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldCount), args.Error(1)
}

func (m *MockAnalyticsService) ProjectsByYear(ctx context.Context) ([]models.YearCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.YearCount), args.Error(1)
}

func (m *MockAnalyticsService) TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedCount), args.Error(1)
}

func (m *MockAnalyticsService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ==================== MOCK PRESIGNER ====================

// MockPresigner implements storage.Presigner for testing
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignUpload(ctx context.Context, fileName, contentType string) (*storage.Upload, error) {
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Upload), args.Error(1)
}

// ==================== MOCK RATE LIMITER ====================

// MockRateLimiter implements middleware.RateLimiter for testing
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
