// Package cache holds the Redis-backed idempotency store used by payment gateways
// without native idempotency keys.
package cache

import (
	"context"
	"fmt"
	"time"

	appconfig "policy_checkout/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects and pings. Callers should skip it when Addr is empty.
func NewRedisClient(ctx context.Context, cfg appconfig.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logrus.WithField("addr", cfg.Addr).Info("[cache][redis] client initialized")
	return rdb, nil
}
