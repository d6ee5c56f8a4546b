// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/middleware"
	"learnhub/internal/notifications"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipRedis leaves the Redis client nil even when REDIS_URL is set.
	SkipRedis bool
}

// InitRuntime connects to the database, ensures the schema when
// DB_AUTO_MIGRATE is on, and connects to Redis when configured. An unreachable
// Redis is logged and yields a nil client.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if cfg.DBAutoMigrate {
		if err := database.ApplySchema(ctx, db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("schema apply failed: %w", err)
		}
	}

	if opts.SkipRedis {
		return db, nil, nil
	}

	rdb, err := notifications.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Redis unavailable, association events disabled",
			slog.String("error", err.Error()),
		)
		return db, nil, nil
	}
	return db, rdb, nil
}
