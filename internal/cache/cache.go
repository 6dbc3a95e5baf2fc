// Package cache is a Redis read-through cache for the product-type catalog.
// It is strictly a cache over the store, invalidated on writes; the store
// stays the single source of truth. A nil *Catalog degrades to all-miss, so
// the API works without Redis configured.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"packaging/models"
)

const productTypesKey = "packaging:product-types"

type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a catalog cache to Redis. An empty addr disables caching.
func New(addr string, ttl time.Duration) *Catalog {
	if addr == "" {
		return nil
	}
	return &Catalog{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// GetProductTypes returns the cached catalog and whether it was a hit.
// Any Redis or decode error counts as a miss.
func (c *Catalog) GetProductTypes(ctx context.Context) ([]models.ProductType, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, productTypesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var types []models.ProductType
	if err := json.Unmarshal(data, &types); err != nil {
		log.Debug().Err(err).Msg("catalog cache decode failed")
		return nil, false
	}
	return types, true
}

// SetProductTypes stores the catalog with the configured TTL.
func (c *Catalog) SetProductTypes(ctx context.Context, types []models.ProductType) {
	if c == nil {
		return
	}
	data, err := json.Marshal(types)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productTypesKey, data, c.ttl).Err(); err != nil {
		log.Debug().Err(err).Msg("catalog cache write failed")
	}
}

// InvalidateProductTypes drops the cached catalog after a write.
func (c *Catalog) InvalidateProductTypes(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, productTypesKey).Err(); err != nil {
		log.Debug().Err(err).Msg("catalog cache invalidation failed")
	}
}
