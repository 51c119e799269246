package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/metrics"
	"storefront-workers/internal/models"
)

// StoreCacheKey is the redis key a store is cached under.
func StoreCacheKey(slug string) string {
	return "store:" + slug
}

// ProductCacheKey is the redis key a product list is cached under.
func ProductCacheKey(filter models.ProductFilter) string {
	owner := filter.StoreSlug
	if owner == "" {
		owner = "id:" + filter.StoreID
	}
	return fmt.Sprintf("products:%s:%s:%d:%t", owner, filter.CategoryID, clampLimit(filter.Limit), filter.FeaturedOnly)
}

// CachedStoreFetcher reads through redis. Redis failures are logged and bypassed.
type CachedStoreFetcher struct {
	next   StoreFetcher
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStoreFetcher(next StoreFetcher, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedStoreFetcher {
	return &CachedStoreFetcher{next: next, redis: rdb, ttl: ttl, logger: log}
}

func (c *CachedStoreFetcher) FetchStore(ctx context.Context, slug string) (*models.Store, error) {
	key := StoreCacheKey(slug)
	var store models.Store
	if cacheGet(ctx, c.redis, c.logger, "store", key, &store) {
		return &store, nil
	}

	fetched, err := c.next.FetchStore(ctx, slug)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, c.redis, c.logger, key, fetched, c.ttl)
	return fetched, nil
}

// CachedProductFetcher reads through redis. Redis failures are logged and bypassed.
type CachedProductFetcher struct {
	next   ProductFetcher
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProductFetcher(next ProductFetcher, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedProductFetcher {
	return &CachedProductFetcher{next: next, redis: rdb, ttl: ttl, logger: log}
}

func (c *CachedProductFetcher) FetchProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	key := ProductCacheKey(filter)
	var products []models.Product
	if cacheGet(ctx, c.redis, c.logger, "products", key, &products) {
		return products, nil
	}

	fetched, err := c.next.FetchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, c.redis, c.logger, key, fetched, c.ttl)
	return fetched, nil
}

func cacheGet(ctx context.Context, rdb *redis.Client, log logger.Logger, kind, key string, dst interface{}) bool {
	val, err := rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.FetchCacheResults.WithLabelValues(kind, "miss").Inc()
		return false
	case err != nil:
		metrics.FetchCacheResults.WithLabelValues(kind, "error").Inc()
		log.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
		return false
	}

	if err := json.Unmarshal(val, dst); err != nil {
		metrics.FetchCacheResults.WithLabelValues(kind, "error").Inc()
		log.Warn("cached value is corrupt", map[string]interface{}{"key": key, "error": err})
		return false
	}
	metrics.FetchCacheResults.WithLabelValues(kind, "hit").Inc()
	return true
}

func cacheSet(ctx context.Context, rdb *redis.Client, log logger.Logger, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("cache encode failed", map[string]interface{}{"key": key, "error": err})
		return
	}
	if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
	}
}
