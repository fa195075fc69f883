package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tavola-dev/tavola/internal/store"
)

// CachedStore is a read-through cache in front of another store. Redis
// failures are logged and the inner store is used instead.
type CachedStore struct {
	inner store.Store
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedStore(inner store.Store, redis *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CachedStore{
		inner: inner,
		redis: redis,
		ttl:   ttl,
	}
}

func cacheKey(collection string) string {
	return fmt.Sprintf("collection:%s", collection)
}

func (c *CachedStore) Load(ctx context.Context, collection string, dst any) error {
	key := cacheKey(collection)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if err := json.Unmarshal(data, dst); err != nil {
			log.Printf("Failed to unmarshal cached %s (continuing with store): %v", collection, err)
			break
		}
		return nil

	case errors.Is(err, redis.Nil):

	default:
		log.Printf("Redis error (continuing with store): %v", err)
	}

	if err := c.inner.Load(ctx, collection, dst); err != nil {
		return err
	}

	jsonData, err := json.Marshal(dst)
	if err != nil {
		log.Printf("Failed to marshal %s for cache: %v", collection, err)
		return nil
	}

	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", collection, err)
	}

	return nil
}

func (c *CachedStore) Save(ctx context.Context, collection string, v any) error {
	err := c.inner.Save(ctx, collection, v)

	// Drop the cached copy even when the write failed, the inner state is unknown.
	if delErr := c.redis.Del(ctx, cacheKey(collection)).Err(); delErr != nil {
		log.Printf("Failed to delete cache for %s: %v", collection, delErr)
	}

	return err
}

func (c *CachedStore) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed: %v", err)
	}

	return c.inner.Ping(ctx)
}

func (c *CachedStore) Close() error {
	if err := c.redis.Close(); err != nil {
		log.Printf("Failed to close redis client: %v", err)
	}

	return c.inner.Close()
}
