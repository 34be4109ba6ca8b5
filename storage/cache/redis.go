// Package cache provides the Redis-backed overview cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/klasbord/klasbord/core"
	"github.com/klasbord/klasbord/core/overview"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ overview.Cache = (*RedisCache)(nil) // interface compliance check

func NewRedisCache(conf core.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ttl: conf.TTL,
	}
}

// NewRedisCacheClient wraps an existing client; used in tests.
func NewRedisCacheClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "redis get")
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrap(err, "decoding cached value")
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrap(err, "encoding value for cache")
	}
	if err = c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "redis ping")
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
