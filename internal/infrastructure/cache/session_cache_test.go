package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

func newCache(t *testing.T, ttl time.Duration) (*SessionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionCache(rdb, ttl), mr
}

func TestPutLookupRemove(t *testing.T) {
	c, mr := newCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "tok", "alice"))
	assert.True(t, mr.Exists("session:tok"))

	username, ok, err := c.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	require.NoError(t, c.Remove(ctx, "tok"))
	_, ok, err = c.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "tok", "alice"))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Lookup(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupFailsWhenRedisDown(t *testing.T) {
	c, mr := newCache(t, 0)
	mr.Close()

	_, ok, err := c.Lookup(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, ok)
}
