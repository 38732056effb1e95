package catalog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

func newCacheFixture(t *testing.T) (*CachedRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cached := NewCachedRepository(seedRepo(t), client, time.Minute, slog.Default())
	return cached, mr
}

func TestCachedRepositoryStoresLookups(t *testing.T) {
	cached, mr := newCacheFixture(t)
	ctx := context.Background()

	p, err := cached.ProductByBarcode(ctx, "7891234567890")
	require.NoError(t, err)
	assert.Equal(t, "Whole Grain Bread", p.Name)
	assert.True(t, mr.Exists("catalog:product:barcode:7891234567890"))

	byID, err := cached.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, byID.Name)
	assert.True(t, mr.Exists("catalog:product:id:2"))
}

func TestCachedRepositoryServesFromCache(t *testing.T) {
	cached, mr := newCacheFixture(t)
	ctx := context.Background()

	first, err := cached.Product(ctx, 1)
	require.NoError(t, err)

	// Poison the cached entry; a cache hit must reflect it.
	mr.Set("catalog:product:id:1", `{"id":1,"name":"Cached Broccoli","price":9.99}`)
	second, err := cached.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cached Broccoli", second.Name)
	assert.NotEqual(t, first.Name, second.Name)
}

func TestCachedRepositoryMissPassesThroughErrors(t *testing.T) {
	cached, _ := newCacheFixture(t)

	_, err := cached.ProductByBarcode(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCachedRepositoryDegradesWhenRedisDown(t *testing.T) {
	cached, mr := newCacheFixture(t)
	mr.Close()

	p, err := cached.ProductByBarcode(context.Background(), "7896080900021")
	require.NoError(t, err)
	assert.Equal(t, "Organic Broccoli", p.Name)
}
