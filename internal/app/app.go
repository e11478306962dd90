// Package app wires configuration into the concrete stores shared by the
// service and the management commands.
package app

import (
	"context"
	"log"
	"os"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/delivery"
	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/internal/device/repository"
	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const memoryQueueSize = 1024

// LoadConfig reads .env, then the YAML named by CONFIG_FILE (default "config").
func LoadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	name := os.Getenv("CONFIG_FILE")
	if name == "" {
		name = "config"
	}
	v, err := config.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	return config.ParseConfig(v)
}

// NewRepository opens Postgres when a DSN is configured and falls back to
// the in-memory store otherwise.
func NewRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (device.DeviceRepository, func(), error) {
	if cfg.Bun.DSN == "" {
		log.Warn("no database configured, devices are kept in memory")
		return repository.NewMemoryRepository(), func() {}, nil
	}
	db, err := repository.Open(ctx, cfg.Bun.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "err", err)
		}
	}
	return repository.NewDeviceRepository(db, log), closeFn, nil
}

// NewQueue connects the Redis delivery queue when an address is configured
// and falls back to an in-process queue otherwise.
func NewQueue(ctx context.Context, cfg *config.Config, log logger.Logger) (delivery.Queue, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Warn("no redis configured, notifications are queued in memory")
		q := delivery.NewMemoryQueue(memoryQueueSize)
		return q, q.Close, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, errors.Wrap(err, "app.NewQueue.Ping")
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Error("failed to close redis", "err", err)
		}
	}
	n := cfg.Notification
	return delivery.NewRedisQueue(rdb, n.QueuePrefix, n.VisibilityTimeout(), n.PollInterval()), closeFn, nil
}
