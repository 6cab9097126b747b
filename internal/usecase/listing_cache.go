package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homefind/internal/entity"

	"github.com/redis/go-redis/v9"
)

const listingCacheTTL = 24 * time.Hour

// ListingCache is the read cache for single-listing lookups. Misses and
// backend failures are the same thing to callers: not found, go to the
// store. The cached view count lags the counter column; that staleness
// is accepted.
type ListingCache interface {
	Get(ctx context.Context, listingID string) (*entity.Property, bool)
	Set(ctx context.Context, property *entity.Property)
	Delete(ctx context.Context, listingID string)
}

type redisListingCache struct {
	client *redis.Client
}

func NewRedisListingCache(client *redis.Client) ListingCache {
	return &redisListingCache{client: client}
}

func listingKey(listingID string) string {
	return fmt.Sprintf("listing:%s", listingID)
}

func (c *redisListingCache) Get(ctx context.Context, listingID string) (*entity.Property, bool) {
	data, err := c.client.Get(ctx, listingKey(listingID)).Bytes()
	if err != nil {
		return nil, false
	}

	var property entity.Property
	if err := json.Unmarshal(data, &property); err != nil {
		// Poisoned entry, drop it.
		c.client.Del(ctx, listingKey(listingID))
		return nil, false
	}
	return &property, true
}

func (c *redisListingCache) Set(ctx context.Context, property *entity.Property) {
	data, err := json.Marshal(property)
	if err != nil {
		return
	}
	c.client.Set(ctx, listingKey(property.ID), data, listingCacheTTL)
}

func (c *redisListingCache) Delete(ctx context.Context, listingID string) {
	c.client.Del(ctx, listingKey(listingID))
}
