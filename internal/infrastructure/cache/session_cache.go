package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

type sessionEntry struct {
	Username string `json:"username"`
}

// SessionCache indexes session tokens to usernames in Redis. It is never the
// source of truth; the user store decides whether a token is live.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionCache with ttl 0 keeps entries until logout.
func NewSessionCache(rdb *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{rdb: rdb, ttl: ttl}
}

func (c *SessionCache) Put(ctx context.Context, token, username string) error {
	return helpers.RedisSetJSON(ctx, c.rdb, helpers.KeySession(token), sessionEntry{Username: username}, c.ttl)
}

func (c *SessionCache) Lookup(ctx context.Context, token string) (string, bool, error) {
	var e sessionEntry
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, helpers.KeySession(token), &e)
	if err != nil || !ok {
		return "", false, err
	}
	return e.Username, true, nil
}

func (c *SessionCache) Remove(ctx context.Context, token string) error {
	return helpers.RedisDel(ctx, c.rdb, helpers.KeySession(token))
}
