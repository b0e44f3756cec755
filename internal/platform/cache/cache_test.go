package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Total string `json:"total"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute, nil), mr
}

func TestCache_FetchJSONPopulatesOnce(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "tb", "wp-1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "tb:wp-1:2024-01-01:v1", key)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return report{Total: "1000"}, nil
	}

	var first report
	hit, err := c.FetchJSON(ctx, key, &first, loader)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "1000", first.Total)
	assert.True(t, mr.Exists(key))

	var second report
	hit, err = c.FetchJSON(ctx, key, &second, loader)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	ttl := mr.TTL(key)
	assert.Equal(t, time.Minute, ttl)
}

func TestCache_BumpChangesKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "bs", "wp-1")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.BuildKey(ctx, "bs", "wp-1")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.Equal(t, "bs:wp-1:v2", after)
}

func TestCache_LoaderErrorIsNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("snapshot failed")

	var dest report
	_, err := c.FetchJSON(ctx, "is:wp-1:v1", &dest, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("is:wp-1:v1"))
}

func TestCache_RedisDownFallsBackToLoader(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var dest report
	hit, err := c.FetchJSON(context.Background(), "cf:wp-1", &dest, func(context.Context) (any, error) {
		return report{Total: "5"}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "5", dest.Total)
}

func TestCache_Disabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "tb", "wp-1")
	require.NoError(t, err)
	assert.Equal(t, "tb:wp-1", key)
	assert.NoError(t, c.Bump(ctx))

	var dest report
	hit, err := c.FetchJSON(ctx, key, &dest, func(context.Context) (any, error) { return report{Total: "7"}, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "7", dest.Total)
}

func TestCache_ListenForInvalidation(t *testing.T) {
	c, mr := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, c.ListenForInvalidation(ctx, ""))
	mr.Publish(BumpChannel, "42")

	assert.Eventually(t, func() bool {
		v, err := c.Version(ctx)
		return err == nil && v == 42
	}, time.Second, 10*time.Millisecond)
}
