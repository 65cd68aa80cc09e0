package database

import (
	"context"
)

// AnalyticsCache stores computed analytics views between catalog mutations
type AnalyticsCache interface {
	GetAnalytics(ctx context.Context, view string, dest any) (generation int64, hit bool, err error)
	SetAnalytics(ctx context.Context, generation int64, view string, value any) error
	InvalidateAnalytics(ctx context.Context) error
	Close() error
}
