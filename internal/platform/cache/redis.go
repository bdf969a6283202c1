package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "apikey:"

	// revokedMarker replaces the owner of a deactivated key until the entry expires.
	revokedMarker = "revoked"
)

// RedisKeyCache caches the owning account of active API keys.
// Key values are stored hashed so a dump of the cache does not leak secrets.
type RedisKeyCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisKeyCache creates a cache whose entries expire after ttl.
func NewRedisKeyCache(rdb *redis.Client, ttl time.Duration) *RedisKeyCache {
	return &RedisKeyCache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL, pings the server and returns the client.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func cacheKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached owner of value. A miss is (uuid.Nil, false, nil);
// a revoked key is (uuid.Nil, true, nil).
func (c *RedisKeyCache) Get(ctx context.Context, value string) (uuid.UUID, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(value)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	if val == revokedMarker {
		return uuid.Nil, true, nil
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return id, true, nil
}

// Set caches accountID as the owner of value unless an entry already exists.
// It never overwrites a revocation written while the caller read the store.
func (c *RedisKeyCache) Set(ctx context.Context, value string, accountID uuid.UUID) error {
	return c.rdb.SetNX(ctx, cacheKey(value), accountID.String(), c.ttl).Err()
}

// Revoke marks value as inactive for one TTL, replacing any cached owner.
func (c *RedisKeyCache) Revoke(ctx context.Context, value string) error {
	return c.rdb.Set(ctx, cacheKey(value), revokedMarker, c.ttl).Err()
}

// Delete drops the cached entry for value.
func (c *RedisKeyCache) Delete(ctx context.Context, value string) error {
	return c.rdb.Del(ctx, cacheKey(value)).Err()
}
