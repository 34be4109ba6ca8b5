package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasbord/klasbord/core/overview"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	cache := NewRedisCacheClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}), ttl)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, srv
}

func TestRedisCache_roundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	rows := []overview.StudentRow{
		{Student: "anna", Count: 2, Average: 8.5, Color: overview.ColorBlue},
		{Student: "bram", Count: 1, Average: 5.5, Color: overview.ColorOrange},
	}
	require.NoError(t, cache.Set(ctx, "overview:sub-1:peer:students", rows))

	var got []overview.StudentRow
	hit, err := cache.Get(ctx, "overview:sub-1:peer:students", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, rows, got)
}

func TestRedisCache_miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	var got []overview.StudentRow
	hit, err := cache.Get(context.Background(), "overview:nope", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestRedisCache_expiry(t *testing.T) {
	cache, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "overview:sub-1:peer:spread", []overview.Spread{{Category: "meedoen"}}))
	srv.FastForward(2 * time.Minute)

	var got []overview.Spread
	hit, err := cache.Get(ctx, "overview:sub-1:peer:spread", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
