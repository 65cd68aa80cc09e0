package service

import (
	"context"
	"log/slog"

	"github.com/capstone-archive/backend-go/internal/database"
)

// invalidateAnalytics drops cached dashboard views after a catalog or bookmark
// change. A nil cache means analytics are computed on every request.
func invalidateAnalytics(ctx context.Context, cache database.AnalyticsCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAnalytics(ctx); err != nil {
		logger.Warn("⚠️ [Cache] Failed to invalidate analytics cache", "error", err)
	}
}
