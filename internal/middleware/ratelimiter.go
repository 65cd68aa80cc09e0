package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/capstone-archive/backend-go/internal/response"
)

// RateLimiter counts attempts per key inside fixed windows
type RateLimiter interface {
	// Allow records one attempt. When the limit is exceeded it returns false
	// and how long until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

type redisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewRateLimiter creates a new Redis-based fixed window rate limiter
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) RateLimiter {
	logger.Info("✅ [RateLimiter] Redis rate limiter enabled",
		"limit", limit,
		"window", window,
	)
	return &redisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// rateKey generates the Redis key for one client and scope
// Format: rate:{scope}:{client}
func rateKey(key string) string {
	return fmt.Sprintf("rate:%s", key)
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if r.limit <= 0 {
		return true, 0, nil
	}

	redisKey := rateKey(key)

	// EXPIRE NX arms the window on a fresh counter and on one that lost its TTL
	var incr *redis.IntCmd
	var ttlCmd *redis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, r.window)
		ttlCmd = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to count attempt", "error", err, "key", key)
		return true, 0, err
	}

	if incr.Val() <= r.limit {
		return true, 0, nil
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = r.window
	}
	return false, ttl, nil
}

// NoOpRateLimiter is a rate limiter that always allows requests
// Used when Redis is not available
type NoOpRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpRateLimiter creates a no-op rate limiter
func NewNoOpRateLimiter(logger *slog.Logger) RateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op rate limiter - rate limiting is disabled")
	return &NoOpRateLimiter{logger: logger}
}

func (r *NoOpRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return true, 0, nil
}

// RateLimit limits requests per client IP within scope. Limiter failures let
// the request through.
func RateLimit(limiter RateLimiter, scope string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("⚠️ [RateLimiter] Limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			seconds := int64(retryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			logger.Warn("🚫 [RateLimiter] Rate limit exceeded",
				"scope", scope,
				"client_ip", c.ClientIP(),
				"retry_after", seconds,
			)
			RateLimitRejections.WithLabelValues(scope).Inc()
			c.Header("Retry-After", strconv.FormatInt(seconds, 10))
			response.Abort(c, http.StatusTooManyRequests, response.CodeRateLimited, "Too many attempts, please try again later")
			return
		}
		c.Next()
	}
}
