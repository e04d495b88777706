package providers

import (
	"testing"
	"time"

	"esv/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricsTestCache struct {
	entries int64
}

func (c *metricsTestCache) Get(_ string) ([]byte, bool)  { return nil, false }
func (c *metricsTestCache) Set(_ string, _ []byte) error { return nil }
func (c *metricsTestCache) EntryCount() int64            { return c.entries }

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncUploads(OutcomeAccepted)
	m.ObserveUploadSize(1024)
	m.ObserveBuildDuration(time.Millisecond)
	m.ObserveCache(&metricsTestCache{})
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_UploadOutcomes(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	m.IncUploads(OutcomeAccepted)
	m.IncUploads(OutcomeAccepted)
	m.IncUploads(OutcomeSchemaError)

	assert.Equal(t, float64(2), metricValue(t, reg, "esv_uploads_total", map[string]string{"outcome": OutcomeAccepted}))
	assert.Equal(t, float64(1), metricValue(t, reg, "esv_uploads_total", map[string]string{"outcome": OutcomeSchemaError}))
	assert.Equal(t, float64(0), metricValue(t, reg, "esv_uploads_total", map[string]string{"outcome": OutcomeParseError}))
}

func TestMetricsProvider_CacheEntriesGauge(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf).ObserveCache(&metricsTestCache{entries: 3})

	assert.Equal(t, float64(3), metricValue(t, reg, "esv_cache_entries", nil))
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	m.IncRequestsTotal("/api/dashboard", 200)
	m.IncRequestsTotal("/api/dashboard", 400)
	m.ObserveRequestDuration("/api/dashboard", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.ObserveUploadSize(4096)
	m.ObserveBuildDuration(2 * time.Millisecond)

	assert.Equal(t, float64(1), metricValue(t, reg, "esv_requests_total", map[string]string{"endpoint": "/api/dashboard", "status": "4xx"}))
	assert.Equal(t, float64(1), metricValue(t, reg, "esv_cache_hits_total", nil))
	assert.Equal(t, float64(2), metricValue(t, reg, "esv_cache_misses_total", nil))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{413, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
