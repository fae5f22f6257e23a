//go:build integration

// Package containers starts throwaway infrastructure for integration tests.
package containers

import (
	"context"
	"sort"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// Redis is a disposable Redis server for draft cache tests.
type Redis struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// StartRedis runs a Redis container for the lifetime of t.
func StartRedis(t *testing.T) *Redis {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, redisImage)
	require.NoError(t, err, "start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err, "redis connection string")

	opts, err := redis.ParseURL(url)
	require.NoError(t, err, "parse redis url")

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err(), "ping redis")

	return &Redis{Container: container, URL: url, Client: client}
}

// Reset drops every key so each test starts from an empty cache.
func (r *Redis) Reset(ctx context.Context) error {
	return r.Client.FlushDB(ctx).Err()
}

// Keys lists the stored keys matching pattern, sorted.
func (r *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := r.Client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
