package providers

import (
	"time"

	"esv/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upload outcomes reported by IncUploads.
const (
	OutcomeAccepted    = "accepted"
	OutcomeParseError  = "parse_error"
	OutcomeSchemaError = "schema_error"
	OutcomeTooLarge    = "too_large"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncUploads(outcome string)
	ObserveUploadSize(bytes int)
	ObserveBuildDuration(duration time.Duration)
	ObserveCache(cache CacheProviderInterface)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	uploadsTotal    *prometheus.CounterVec
	uploadSize      prometheus.Histogram
	buildDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncUploads(outcome string) {
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveUploadSize(bytes int) {
	m.uploadSize.Observe(float64(bytes))
}

func (m *MetricsProvider) ObserveBuildDuration(duration time.Duration) {
	m.buildDuration.Observe(duration.Seconds())
}

// ObserveCache exports the entry count of cache as a gauge. Call it once.
func (m *MetricsProvider) ObserveCache(cache CacheProviderInterface) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "esv_cache_entries",
		Help: "Current number of cached dashboards",
	}, func() float64 {
		return float64(cache.EntryCount())
	})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "esv_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esv_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esv_cache_hits_total",
			Help: "Total number of dashboard cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "esv_cache_misses_total",
			Help: "Total number of dashboard cache misses",
		}),

		uploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "esv_uploads_total",
			Help: "Total number of uploaded exports by outcome",
		}, []string{"outcome"}),

		uploadSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esv_upload_size_bytes",
			Help:    "Size of uploaded exports after decompression",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),

		buildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "esv_dashboard_build_duration_seconds",
			Help:    "Time spent validating an export and building its dashboard",
			Buckets: prometheus.DefBuckets,
		}),
	}

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncUploads(_ string)                              {}
func (n *noopMetrics) ObserveUploadSize(_ int)                          {}
func (n *noopMetrics) ObserveBuildDuration(_ time.Duration)             {}
func (n *noopMetrics) ObserveCache(_ CacheProviderInterface)            {}
