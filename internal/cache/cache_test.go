package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c := New(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestClient_Get(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, srv.Set("movie:1", "payload"))

	got, err := c.Get(ctx, "movie:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	got, err = c.Get(ctx, "movie:2")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_FillAndExpire(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	c.FillJSON(ctx, "movie:7", entry{ID: 7, Title: "Heat"}, time.Minute)

	var got entry
	assert.True(t, c.GetJSON(ctx, "movie:7", &got))
	assert.Equal(t, entry{ID: 7, Title: "Heat"}, got)

	srv.FastForward(2 * time.Minute)
	assert.False(t, c.GetJSON(ctx, "movie:7", &got))
}

func TestClient_FillKeepsExistingValue(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	c.FillJSON(ctx, "movie:7", entry{ID: 7, Title: "Heat"}, time.Minute)
	c.FillJSON(ctx, "movie:7", entry{ID: 7, Title: "Ronin"}, time.Minute)

	var got entry
	require.True(t, c.GetJSON(ctx, "movie:7", &got))
	assert.Equal(t, "Heat", got.Title)
}

func TestClient_InvalidateBlocksStaleFill(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	c.FillJSON(ctx, "user:1", entry{ID: 1, Title: "old"}, time.Minute)

	c.Invalidate(ctx, "user:1", "user:2")

	var got entry
	assert.False(t, c.GetJSON(ctx, "user:1", &got))
	assert.False(t, c.GetJSON(ctx, "user:2", &got))

	c.FillJSON(ctx, "user:1", entry{ID: 1, Title: "stale"}, time.Minute)
	assert.False(t, c.GetJSON(ctx, "user:1", &got))

	srv.FastForward(tombstoneTTL + time.Second)
	c.FillJSON(ctx, "user:1", entry{ID: 1, Title: "fresh"}, time.Minute)
	require.True(t, c.GetJSON(ctx, "user:1", &got))
	assert.Equal(t, "fresh", got.Title)
}

func TestClient_FailsSafeWhenRedisDown(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Close()
	ctx := context.Background()

	c.FillJSON(ctx, "k", entry{ID: 1}, time.Minute)
	c.Invalidate(ctx, "k")
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_NilIsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	c.FillJSON(ctx, "k", entry{ID: 1}, time.Minute)
	c.Invalidate(ctx, "k")
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)

	var dst entry
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	assert.NoError(t, c.Close())
}
