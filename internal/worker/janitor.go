package worker

import (
	"context"
	"time"
)

// ResetTokenCleaner removes password reset tokens past their expiry
type ResetTokenCleaner interface {
	ClearExpiredResetTokens(ctx context.Context) (int64, error)
}

// StartResetTokenJanitor periodically clears expired reset tokens so that
// abandoned reset requests do not linger on user rows.
func StartResetTokenJanitor(pool *Pool, cleaner ResetTokenCleaner, interval time.Duration) {
	pool.SubmitPeriodic("reset-token-janitor", interval, func(ctx context.Context) error {
		_, err := cleaner.ClearExpiredResetTokens(ctx)
		return err
	})
}
