package providers

import (
	"fmt"
	"unsafe"

	"esv/internal/structures"

	"github.com/coocood/freecache"
)

const (
	defaultCacheTTL = 600

	// MinCacheEntryBytes is the smallest per-entry capacity a configured
	// cache must offer. Compressed dashboards of exports with a few hundred
	// campaigns stay below it.
	MinCacheEntryBytes = 64 << 10
	// MinCacheSizeMB is the cache size whose entry limit is MinCacheEntryBytes.
	MinCacheSizeMB = MinCacheEntryBytes >> 10
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	EntryCount() int64
}

// CacheEntryLimit is the largest value freecache accepts in a cache of
// sizeMB megabytes.
func CacheEntryLimit(sizeMB int) int {
	return sizeMB << 10
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := defaultCacheTTL
	if conf.Cache.TTL > 0 {
		ttl = max(int(conf.Cache.TTL.Seconds()), 1)
	}

	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// freecache copies keys, so the aliasing slice is never written to.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) error {
	if err := c.cache.Set(unsafeStringToBytes(key), value, c.ttl); err != nil {
		return fmt.Errorf("cache entry of %d bytes: %w", len(value), err)
	}
	return nil
}

func (c *CacheProvider) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)  { return nil, false }
func (n *noopCache) Set(_ string, _ []byte) error { return nil }
func (n *noopCache) EntryCount() int64            { return 0 }
