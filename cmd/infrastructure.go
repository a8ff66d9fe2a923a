package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"waterdelivery/internal/adapters/out/notifier"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/redisdedup"
	"waterdelivery/internal/core/ports"

	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const pushTimeout = 10 * time.Second

// OpenDatabase connects to postgres and migrates the schema.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpg.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// OpenDeduplicator connects to redis. The returned func closes the client.
func OpenDeduplicator(ctx context.Context, cfg Config) (ports.Deduplicator, func() error, error) {
	rdb, err := redisdedup.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return redisdedup.NewDeduplicator(rdb, cfg.DedupTTL), rdb.Close, nil
}

// OpenNotifier picks RabbitMQ, then the push gateway, then the log.
func OpenNotifier(cfg Config, logger *slog.Logger) (ports.Notifier, func() error, error) {
	noop := func() error { return nil }

	switch {
	case cfg.AMQPURL != "":
		conn, ch, err := notifier.DialAMQP(cfg.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		n, err := notifier.NewAMQPNotifier(ch, cfg.AMQPQueue)
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		logger.Info("Notifications go to RabbitMQ", "queue", cfg.AMQPQueue)
		return n, conn.Close, nil

	case cfg.PushURL != "":
		logger.Info("Notifications go to the push gateway", "url", cfg.PushURL)
		return notifier.NewPushNotifier(cfg.PushURL, cfg.PushToken, pushTimeout), noop, nil

	default:
		logger.Warn("No notifier configured, notifications are only logged")
		return notifier.NewLogNotifier(logger), noop, nil
	}
}
