package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/capstone-archive/backend-go/internal/config"
)

// analyticsGenerationKey is bumped on every catalog mutation. Cached views are
// stored under the generation that was current when they were computed, so a
// bump makes all of them unreachable at once.
const analyticsGenerationKey = "analytics:generation"

// RedisClient wraps the redis client with helper methods for the analytics cache
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDatabase,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDatabase),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client, shared with the rate limiter
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, analyticsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func analyticsKey(generation int64, view string) string {
	return fmt.Sprintf("analytics:v%d:%s", generation, view)
}

// GetAnalytics loads a cached view into dest. It returns false on a miss
// together with the generation the lookup was made under; a value computed
// after the miss must be stored under that same generation.
func (r *RedisClient) GetAnalytics(ctx context.Context, view string, dest any) (int64, bool, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Error("❌ [Redis] Failed to read analytics generation", "error", err)
		return 0, false, err
	}

	raw, err := r.client.Get(ctx, analyticsKey(gen, view)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return gen, false, nil
		}
		r.logger.Error("❌ [Redis] Failed to get analytics view",
			"view", view,
			"error", err,
		)
		return gen, false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to unmarshal analytics view, ignoring",
			"view", view,
			"error", err,
		)
		return gen, false, nil
	}

	r.logger.Debug("📖 [Redis] Analytics cache hit", "view", view, "generation", gen)
	return gen, true, nil
}

// SetAnalytics stores a computed view under generation gen with the
// configured TTL. If the cache was invalidated since gen was read, the entry
// lands in a key no reader looks at and simply expires.
func (r *RedisClient) SetAnalytics(ctx context.Context, gen int64, view string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics view %s: %w", view, err)
	}

	ttl := time.Duration(r.cfg.AnalyticsCacheTTL) * time.Second
	if err := r.client.Set(ctx, analyticsKey(gen, view), data, ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to store analytics view",
			"view", view,
			"error", err,
		)
		return err
	}

	r.logger.Debug("💾 [Redis] Stored analytics view",
		"view", view,
		"generation", gen,
		"ttl", ttl,
	)
	return nil
}

// InvalidateAnalytics drops every cached view by moving to a new generation
func (r *RedisClient) InvalidateAnalytics(ctx context.Context) error {
	gen, err := r.client.Incr(ctx, analyticsGenerationKey).Result()
	if err != nil {
		r.logger.Error("❌ [Redis] Failed to invalidate analytics cache", "error", err)
		return err
	}

	r.logger.Debug("🗑️ [Redis] Analytics cache invalidated", "generation", gen)
	return nil
}
