package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// tombstoneTTL bounds how long an invalidated key refuses refills. It must
// outlast the slowest store read that can race an invalidation.
const tombstoneTTL = 30 * time.Second

var tombstone = []byte("\x00invalidated")

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves like an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both read as a miss
		return nil, nil
	}
	if bytes.Equal(res, tombstone) {
		return nil, nil
	}
	return res, nil
}

// Invalidate replaces keys with a short-lived tombstone that reads treat as a
// miss and FillJSON cannot overwrite.
func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Set(ctx, key, tombstone, tombstoneTTL)
	}
	_, _ = pipe.Exec(ctx)
}

// GetJSON decodes a cached value into dst. It reports whether a usable value was found.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// FillJSON stores value only when key is absent. Read-through paths use it so
// they never overwrite a tombstone left by Invalidate.
func (c *Client) FillJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.SetNX(ctx, key, payload, ttl).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
