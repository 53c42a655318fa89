package category

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

const (
	defaultCacheTTL = 5 * time.Minute
	listKey         = "trivia:categories:all"
)

// Cache keeps the category list in Redis. Categories have no write path in the
// API, so the only source of staleness is an out-of-band reseed; the migrator
// invalidates the list after up and down, and the TTL bounds anything else.
// Questions are never cached since every create and delete changes them.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ListCache = (*Cache)(nil)

// NewRedisClient opens the client the category cache uses. The API and the
// migrator both build it here so they address the same Redis database.
func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	categories := []Category{}
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey, data, c.ttl).Err()
}

// Invalidate drops the cached list, e.g. after reseeding.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listKey).Err()
}
