package bootstrap

import (
	"context"
	"log/slog"

	"restaurant-reservation/internal/handler/middleware"
	"restaurant-reservation/internal/infra/ratelimit"
	"restaurant-reservation/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewRateLimitMiddleware,
	),
)

// NewRedisClient returns nil when rate limiting is off. A failed ping is only logged:
// the limiter lets requests through while Redis is away.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, rate limiting degraded to pass-through", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

func NewRateLimitMiddleware(rdb *redis.Client, cfg config.Config) *middleware.RateLimitMiddleware {
	if rdb == nil {
		return middleware.NewRateLimitMiddleware(nil)
	}
	return middleware.NewRateLimitMiddleware(ratelimit.NewLimiter(rdb, cfg.RateLimit))
}
