package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CachedRepository is a read-through cache in front of another Repository.
// Lookups by id and barcode are cached in Redis; concurrent misses for the
// same key are collapsed through singleflight. Redis being down degrades to
// plain repository reads.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCachedRepository wraps repo with a Redis read-through cache.
func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{inner: repo, client: client, ttl: ttl, logger: logger}
}

// Product returns the product with the given id, from cache when possible.
func (c *CachedRepository) Product(ctx context.Context, id int64) (*Product, error) {
	return c.lookup(ctx, fmt.Sprintf("catalog:product:id:%d", id), func() (*Product, error) {
		return c.inner.Product(ctx, id)
	})
}

// ProductByBarcode returns the product with the given barcode, from cache when possible.
func (c *CachedRepository) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return c.lookup(ctx, "catalog:product:barcode:"+barcode, func() (*Product, error) {
		return c.inner.ProductByBarcode(ctx, barcode)
	})
}

// ProductsByCategory delegates to the wrapped repository.
func (c *CachedRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return c.inner.ProductsByCategory(ctx, category)
}

// AllProducts delegates to the wrapped repository.
func (c *CachedRepository) AllProducts(ctx context.Context) ([]Product, error) {
	return c.inner.AllProducts(ctx)
}

// CreateProduct delegates to the wrapped repository. The catalogue is
// immutable after seeding, so no invalidation is needed.
func (c *CachedRepository) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	return c.inner.CreateProduct(ctx, req)
}

func (c *CachedRepository) lookup(ctx context.Context, key string, fetch func() (*Product, error)) (*Product, error) {
	if c.client != nil {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			var p Product
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		} else if !errors.Is(err, redis.Nil) && c.logger != nil {
			c.logger.Warn("catalog cache read", slog.String("key", key), slog.Any("error", err))
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		p, err := fetch()
		if err != nil {
			return nil, err
		}
		if c.client != nil {
			if data, err := json.Marshal(p); err == nil {
				if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil && c.logger != nil {
					c.logger.Warn("catalog cache write", slog.String("key", key), slog.Any("error", err))
				}
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}
