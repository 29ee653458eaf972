package app

import (
	"context"
	"fmt"

	"go-directory/internal/asset"
	"go-directory/internal/config"
	"go-directory/internal/shared/connection"
	"go-directory/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, applies migrations and mounts every
// module on router. The returned func releases the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close resource failed", zap.Error(err))
			}
		}
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseDSN, cfg.DatabaseRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	closers = append(closers, sqlDB.Close)

	if err := database.Migrate(sqlDB); err != nil {
		cleanup()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database ready")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		if rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DatabaseRetries); err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, rdb.Close)
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys are disabled")
	}

	s3Client, err := asset.NewS3Client(ctx, asset.S3Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	err = registerModules(ctx, router, cfg, modules{
		gormDB: gormDB,
		sqlDB:  sqlDB,
		redis:  rdb,
		store:  asset.NewS3Store(s3Client, cfg.S3Bucket, logger),
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
