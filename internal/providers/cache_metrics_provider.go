package providers

import "esv/internal/structures"

// MetricsCacheProvider counts dashboard cache hits and misses on Get.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) error {
	return c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) EntryCount() int64 {
	return c.inner.EntryCount()
}

// NewInstrumentedCacheProvider creates the dashboard cache wrapped with hit
// and miss counters. A disabled cache is returned unwrapped so it does not
// report a miss per upload.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	metrics.ObserveCache(inner)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
