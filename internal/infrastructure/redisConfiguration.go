package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/config"
	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects using REDIS_URL when set, otherwise the discrete
// host/port settings. It returns nil when Redis is not configured or not
// reachable, and callers fall back to SQL-backed implementations.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			logger.Warn("invalid REDIS_URL, redis disabled", "error", err)
			return nil
		}
		opts = parsed
	case cfg.Host != "":
		opts = &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	default:
		logger.Info("redis not configured")
		return nil
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis connection failed, redis disabled", "addr", opts.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("connected to redis", "addr", opts.Addr)
	return client
}
