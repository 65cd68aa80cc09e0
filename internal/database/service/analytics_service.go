package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
)

const (
	DefaultTopSavedLimit = 5
	MaxTopSavedLimit     = 50

	recentWindow = 30 * 24 * time.Hour
)

// AnalyticsService defines the interface for the admin dashboard aggregates
type AnalyticsService interface {
	Overview(ctx context.Context) (*models.AnalyticsOverview, error)
	ProjectsByField(ctx context.Context) ([]models.FieldCount, error)
	ProjectsByYear(ctx context.Context) ([]models.YearCount, error)
	TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	cache         database.AnalyticsCache
	logger        *slog.Logger
}

// NewAnalyticsService creates a new analytics service instance. cache may be nil.
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	cache database.AnalyticsCache,
	logger *slog.Logger,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		cache:         cache,
		logger:        logger,
	}
}

// cached serves view from the cache or computes and stores it under the
// generation observed before computing.
func cached[T any](ctx context.Context, s *analyticsService, view string, compute func() (T, error)) (T, error) {
	var (
		value T
		gen   int64
		store bool
	)
	if s.cache != nil {
		g, hit, err := s.cache.GetAnalytics(ctx, view, &value)
		if err != nil {
			s.logger.Warn("⚠️ [AnalyticsService] Cache read failed, computing directly", "view", view, "error", err)
		} else if hit {
			return value, nil
		} else {
			gen, store = g, true
		}
	}

	value, err := compute()
	if err != nil {
		s.logger.Error("❌ [AnalyticsService] Failed to compute view", "view", view, "error", err)
		return value, err
	}

	if store {
		if err := s.cache.SetAnalytics(ctx, gen, view, value); err != nil {
			s.logger.Warn("⚠️ [AnalyticsService] Cache write failed", "view", view, "error", err)
		}
	}
	return value, nil
}

func (s *analyticsService) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	return cached(ctx, s, "overview", func() (*models.AnalyticsOverview, error) {
		return s.analyticsRepo.Overview(ctx, time.Now().Add(-recentWindow))
	})
}

func (s *analyticsService) ProjectsByField(ctx context.Context) ([]models.FieldCount, error) {
	return cached(ctx, s, "by-field", func() ([]models.FieldCount, error) {
		rows, err := s.analyticsRepo.ProjectsByField(ctx)
		if rows == nil {
			rows = []models.FieldCount{}
		}
		return rows, err
	})
}

func (s *analyticsService) ProjectsByYear(ctx context.Context) ([]models.YearCount, error) {
	return cached(ctx, s, "by-year", func() ([]models.YearCount, error) {
		rows, err := s.analyticsRepo.ProjectsByYear(ctx)
		if rows == nil {
			rows = []models.YearCount{}
		}
		return rows, err
	})
}

func (s *analyticsService) TopSaved(ctx context.Context, limit int) ([]models.SavedCount, error) {
	if limit == 0 {
		limit = DefaultTopSavedLimit
	}
	if limit < 1 {
		return nil, NewValidationError("limit", "must be a positive integer")
	}
	if limit > MaxTopSavedLimit {
		limit = MaxTopSavedLimit
	}

	return cached(ctx, s, fmt.Sprintf("top-saved:%d", limit), func() ([]models.SavedCount, error) {
		rows, err := s.analyticsRepo.TopSaved(ctx, limit)
		if rows == nil {
			rows = []models.SavedCount{}
		}
		return rows, err
	})
}

// ExportWorkbook renders every dashboard view into an XLSX workbook
func (s *analyticsService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	s.logger.Info("📊 [AnalyticsService] Exporting analytics workbook")

	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	byField, err := s.ProjectsByField(ctx)
	if err != nil {
		return nil, err
	}
	byYear, err := s.ProjectsByYear(ctx)
	if err != nil {
		return nil, err
	}
	topSaved, err := s.TopSaved(ctx, MaxTopSavedLimit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("⚠️ [AnalyticsService] Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", "Overview"); err != nil {
		return nil, fmt.Errorf("failed to name overview sheet: %w", err)
	}
	overviewRows := [][]interface{}{
		{"Metric", "Value"},
		{"Active projects", overview.ActiveProjects},
		{"Trashed projects", overview.TrashedProjects},
		{"Students", overview.Students},
		{"Admins", overview.Admins},
		{"Saved projects", overview.SavedProjects},
		{"Projects added in the last 30 days", overview.RecentProjects},
	}
	if err := writeRows(f, "Overview", overviewRows); err != nil {
		return nil, err
	}

	fieldRows := [][]interface{}{{"Field", "Projects"}}
	for _, row := range byField {
		fieldRows = append(fieldRows, []interface{}{row.Field, row.Count})
	}
	if err := writeSheet(f, "By Field", fieldRows); err != nil {
		return nil, err
	}

	yearRows := [][]interface{}{{"Year", "Projects"}}
	for _, row := range byYear {
		yearRows = append(yearRows, []interface{}{row.Year, row.Count})
	}
	if err := writeSheet(f, "By Year", yearRows); err != nil {
		return nil, err
	}

	savedRows := [][]interface{}{{"Project ID", "Title", "Author", "Field", "Year", "Saves"}}
	for _, row := range topSaved {
		savedRows = append(savedRows, []interface{}{row.ProjectID, row.Title, row.Author, row.Field, row.Year, row.Count})
	}
	if err := writeSheet(f, "Top Saved", savedRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("✅ [AnalyticsService] Analytics workbook exported", "bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	return nil
}
