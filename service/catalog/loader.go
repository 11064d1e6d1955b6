package catalog

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"storefront.GO/config"
	"storefront.GO/core/cache"
	client "storefront.GO/model/client"
	entity "storefront.GO/model/entity"
)

const (
	warmCacheKey = "catalog:list"
	warmCacheTag = "catalog"
	warmCacheTTL = 900 // seconds
)

// versionCounter distinguishes catalog snapshots across loaders, so memoized
// views keyed on the version never collide.
var versionCounter atomic.Uint64

// Loader fetches the full product list exactly once per lifetime (one view
// load = one retrieval). While pending it reports loading; on failure it
// logs and leaves the list empty — no retry, no user-facing error.
type Loader struct {
	client *client.CatalogClient

	once     sync.Once
	mu       sync.RWMutex
	loading  bool
	products []entity.Product
	version  uint64
}

func NewLoader(c *client.CatalogClient) *Loader {
	return &Loader{client: c, loading: true}
}

// Start issues the single retrieval in the background. Subsequent calls are
// no-ops.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.load(ctx)
	})
}

// LoadSync issues the single retrieval on the calling goroutine (CLI and
// tests). Subsequent calls are no-ops.
func (l *Loader) LoadSync(ctx context.Context) {
	l.once.Do(func() {
		l.load(ctx)
	})
}

func (l *Loader) load(ctx context.Context) {
	products, err := l.client.Fetch(ctx)
	l.mu.Lock()
	l.loading = false
	if err != nil {
		log.Printf("catalog: load failed: %v", err)
		l.mu.Unlock()
		return
	}
	l.products = products
	l.version = versionCounter.Add(1)
	l.mu.Unlock()

	cache.GetInstance().Set(warmCacheKey, products, warmCacheTTL, []string{warmCacheTag})
}

// Loading reports whether the retrieval is still pending.
func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Products returns the loaded list verbatim (empty until the load settles).
func (l *Loader) Products() []entity.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.products
}

// Version identifies the loaded snapshot; 0 means nothing loaded yet.
func (l *Loader) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Cached returns the shared warm catalog, if any.
func Cached() ([]entity.Product, bool) {
	v, ok := cache.GetInstance().Get(warmCacheKey)
	if !ok {
		return nil, false
	}
	products, ok := v.([]entity.Product)
	return products, ok
}

// Warm fetches the catalog into the shared cache (and Redis when
// configured). Used by the cron refresh job; per-view loaders still fetch
// on their own.
func Warm(ctx context.Context, c *client.CatalogClient) (int, error) {
	products, err := c.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	cache.GetInstance().Set(warmCacheKey, products, warmCacheTTL, []string{warmCacheTag})

	if config.RedisClient != nil {
		if b, err := json.Marshal(products); err == nil {
			if err := config.RedisClient.Set(config.RedisCtx(), warmCacheKey, b, 0).Err(); err != nil {
				log.Printf("catalog: redis warm failed: %v", err)
			}
		}
	}
	return len(products), nil
}
