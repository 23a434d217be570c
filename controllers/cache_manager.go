package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:v:"
	ProductListCachePrefix = "products:all:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 10 * time.Minute
)

// CacheManager caches product reads in Redis. It is safe to use with a nil
// client, in which case every lookup misses and writes are dropped. Redis
// failures are logged and never surface to callers.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{redis: client, ttl: DefaultCacheTTL}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// Version returns the current catalog cache version. Callers read it before
// reading the store and pass it to the matching Get and Set calls, so a write
// racing with an invalidation lands under a version nobody reads any more.
func (cm *CacheManager) Version(ctx context.Context) (int64, bool) {
	if !cm.enabled() {
		return 0, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		zap.L().Warn("Product cache version read failed", zap.Error(err))
		return 0, false
	}
	return version, true
}

// GetProduct returns the cached product for the store id.
func (cm *CacheManager) GetProduct(ctx context.Context, version int64, id string) (*models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}
	data, err := cm.redis.Get(ctx, productKey(version, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("Product cache read failed", zap.Error(err), zap.String("id", id))
		}
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err), zap.String("id", id))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches product under version without blocking the request.
func (cm *CacheManager) SetProductAsync(version int64, id string, product *models.Product) {
	if !cm.enabled() || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("id", id))
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cm.redis.Set(bgCtx, productKey(version, id), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("id", id))
		}
	}()
}

// GetProductList returns the cached full catalog for version.
func (cm *CacheManager) GetProductList(ctx context.Context, version int64) ([]models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}
	data, err := cm.redis.Get(ctx, listKey(version)).Bytes()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the full catalog under version.
func (cm *CacheManager) SetProductListAsync(version int64, products []models.Product) {
	if !cm.enabled() {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cm.redis.Set(bgCtx, listKey(version), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// InvalidateList bumps the version so every cached list and product goes
// stale.
func (cm *CacheManager) InvalidateList(ctx context.Context) {
	if !cm.enabled() {
		return
	}
	if err := cm.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		zap.L().Error("Failed to invalidate product cache", zap.Error(err))
	}
}

// InvalidateProduct retires the cached detail for id along with the lists.
// Entries under older versions expire with their TTL.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, id string) {
	if !cm.enabled() {
		return
	}
	cm.InvalidateList(ctx)
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX keeps a concurrent first bump from being overwritten.
		if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CacheVersionKey).Int64()
	}
	return 0, err
}

func listKey(version int64) string {
	return fmt.Sprintf("%s%d", ProductListCachePrefix, version)
}

func productKey(version int64, id string) string {
	return fmt.Sprintf("%s%d:%s", ProductCachePrefix, version, id)
}
