package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/contacts-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// setupRedis connects to the cache server and verifies it answers.
func setupRedis(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Redis connection established",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB))
	return client, nil
}
