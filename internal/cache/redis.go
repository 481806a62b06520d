package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/news"
)

// Shared is the optional cross-process tier. Implementations must treat
// backend failures as misses: a broken shared cache degrades the service to
// L1-only, it never fails a request.
type Shared interface {
	Get(ctx context.Context, key string) ([]news.Item, bool)
	Set(ctx context.Context, key string, items []news.Item, ttl time.Duration)
}

const redisKeyPrefix = "newspulse:feed:"

// Redis implements Shared over a Redis backend with JSON payloads.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings the backend so a misconfigured address is
// caught at startup rather than on the first request.
func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]news.Item, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("shared cache read failed, degrading to local tier", "key", key, "error", err)
		}
		return nil, false
	}

	var items []news.Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("shared cache payload corrupt", "key", key, "error", err)
		return nil, false
	}
	return items, true
}

func (r *Redis) Set(ctx context.Context, key string, items []news.Item, ttl time.Duration) {
	data, err := json.Marshal(items)
	if err != nil {
		logger.Warn("shared cache marshal failed", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		logger.Warn("shared cache write failed", "key", key, "error", err)
	}
}
