// Package redisdedup claims keys in Redis so that several dispatcher replicas
// never send the same event twice.
package redisdedup

import (
	"context"
	"fmt"
	"time"

	"waterdelivery/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL keeps a claim long enough to outlive any outbox retention.
const DefaultTTL = 7 * 24 * time.Hour

// Client is the subset of *redis.Client the deduplicator needs.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ ports.Deduplicator = &Deduplicator{}

type Deduplicator struct {
	client Client
	ttl    time.Duration
}

func NewDeduplicator(client Client, ttl time.Duration) *Deduplicator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Deduplicator{client: client, ttl: ttl}
}

// Claim sets key with SETNX. Only the first caller within the TTL gets true.
func (d *Deduplicator) Claim(ctx context.Context, key string) (bool, error) {
	claimed, err := d.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return claimed, nil
}

// Release deletes key. Releasing a key that is not held is not an error.
func (d *Deduplicator) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
