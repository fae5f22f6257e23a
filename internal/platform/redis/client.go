// Package redis connects the draft cache to a shared Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"signup/internal/platform/config"
	"signup/pkg/platform/kv"
)

var ErrNotConfigured = errors.New("REDIS_URL is required when CACHE_BACKEND=redis")

// Client is a pooled connection plus the key layout for wizard drafts.
type Client struct {
	*redis.Client
	prefix string
	cfg    config.RedisConfig
}

// New dials cfg.URL with the configured pool and timeouts and pings once.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rc := redis.NewClient(opts)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("reach draft cache: %w", err)
	}
	return &Client{Client: rc, prefix: cfg.Prefix, cfg: cfg}, nil
}

// DraftStore is the kv.Store for one user's draft and identity keys. Keys
// expire after cfg.KeyTTL so abandoned registrations are dropped.
func (c *Client) DraftStore() *kv.RedisStore {
	return kv.NewRedisStore(c.Client, kv.WithPrefix(c.prefix), kv.WithTTL(c.cfg.KeyTTL))
}
