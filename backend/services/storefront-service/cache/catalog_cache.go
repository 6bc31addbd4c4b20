package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CatalogVersionKey   = "catalog:version"
	productListPrefix   = "catalog:v%d:products:"
	activeCategoriesKey = "catalog:v%d:categories:active"
)

// CatalogCache caches the public product and category listings in Redis.
// Keys embed a version number; bumping the version invalidates every
// listing at once and stale keys expire on their own. Lookups return the
// version they read so a miss is filled under that version, never a newer one.
type CatalogCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCache{redis: client, ttl: ttl, logger: logger}
}

func (c *CatalogCache) GetProducts(ctx context.Context, category string) ([]models.Product, int64, bool) {
	var products []models.Product
	version, ok := c.get(ctx, func(v int64) string { return productListKey(v, category) }, &products)
	if !ok {
		return nil, version, false
	}
	return products, version, true
}

// SetProductsAsync stores a listing under the version its lookup returned.
// A zero version is skipped.
func (c *CatalogCache) SetProductsAsync(version int64, category string, products []models.Product) {
	c.setAsync(productListKey(version, category), version, products)
}

func (c *CatalogCache) GetActiveCategories(ctx context.Context) ([]models.Category, int64, bool) {
	var categories []models.Category
	version, ok := c.get(ctx, func(v int64) string { return fmt.Sprintf(activeCategoriesKey, v) }, &categories)
	if !ok {
		return nil, version, false
	}
	return categories, version, true
}

func (c *CatalogCache) SetActiveCategoriesAsync(version int64, categories []models.Category) {
	c.setAsync(fmt.Sprintf(activeCategoriesKey, version), version, categories)
}

// Invalidate bumps the catalog version so every cached listing is bypassed.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	newVersion, err := c.redis.Incr(ctx, CatalogVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	c.logger.Debug("Catalog cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key func(int64) string, dst interface{}) (int64, bool) {
	version, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("Catalog cache version read failed", zap.Error(err))
		return 0, false
	}
	data, err := c.redis.Get(ctx, key(version)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Catalog cache read failed", zap.Error(err))
		}
		return version, false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Failed to unmarshal cached catalog entry", zap.Error(err))
		return version, false
	}
	return version, true
}

func (c *CatalogCache) setAsync(key string, version int64, value interface{}) {
	if version <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to marshal catalog entry for cache", zap.Error(err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache catalog entry", zap.Error(err))
		}
	}()
}

// version returns the current catalog version, initializing it to 1.
func (c *CatalogCache) version(ctx context.Context) (int64, error) {
	v, err := c.redis.Get(ctx, CatalogVersionKey).Int64()
	if err == redis.Nil {
		if err := c.redis.SetNX(ctx, CatalogVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.redis.Get(ctx, CatalogVersionKey).Int64()
	}
	return v, err
}

func productListKey(version int64, category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "_all"
	}
	return fmt.Sprintf(productListPrefix, version) + category
}
