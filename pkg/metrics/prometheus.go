// Package metrics provides Prometheus metrics for the rigmate advisory service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the advisory service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	analysesTotal            prometheus.Counter
	analysisLatency          prometheus.Histogram
	incompatibleConfigs      prometheus.Counter
	bottlenecksDetected      *prometheus.CounterVec
	recommendationsGenerated prometheus.Counter

	// Cache and catalog health
	cacheHits             prometheus.Counter
	cacheMisses           prometheus.Counter
	cacheEntries          prometheus.Gauge
	staleResultsDiscarded prometheus.Counter
	catalogMisses         prometheus.Counter
	catalogEntries        prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rigmate",
		subsystem:        "advisor",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of configuration analyses performed",
	})

	m.analysisLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_latency_milliseconds",
		Help:      "Histogram of end-to-end analysis latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.incompatibleConfigs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "incompatible_configurations_total",
		Help:      "Total number of analyses that found the build incompatible",
	})

	m.bottlenecksDetected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "bottlenecks_detected_total",
			Help:      "Total number of bottlenecks detected by type and severity",
		},
		[]string{"type", "severity"},
	)

	m.recommendationsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_generated_total",
		Help:      "Total number of upgrade plans generated",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_cache_hits_total",
		Help:      "Total number of analysis result cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_cache_misses_total",
		Help:      "Total number of analysis result cache misses",
	})

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_cache_entries",
		Help:      "Current number of live entries in the result cache",
	})

	m.staleResultsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_results_discarded_total",
		Help:      "Total number of superseded analysis results that were not applied",
	})

	m.catalogMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_misses_total",
		Help:      "Total number of benchmark catalog lookups that fell back to the neutral score",
	})

	m.catalogEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_entries",
		Help:      "Number of entries loaded in the benchmark catalog",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordAnalysis records one completed analysis and its latency.
func RecordAnalysis(latencyMs float64) {
	globalManager.analysesTotal.Inc()
	globalManager.analysisLatency.Observe(latencyMs)
}

// RecordIncompatibleConfiguration increments the incompatible-build counter.
func RecordIncompatibleConfiguration() {
	globalManager.incompatibleConfigs.Inc()
}

// RecordBottleneck counts one detected bottleneck by type and severity.
func RecordBottleneck(bottleneckType, severity string) {
	globalManager.bottlenecksDetected.WithLabelValues(bottleneckType, severity).Inc()
}

// RecordRecommendations counts generated upgrade plans.
func RecordRecommendations(n int) {
	globalManager.recommendationsGenerated.Add(float64(n))
}

// RecordCacheHit increments the result cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the result cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheEntries sets the live result cache entry count.
func UpdateCacheEntries(n int) {
	globalManager.cacheEntries.Set(float64(n))
}

// RecordStaleResultDiscarded counts a superseded result that was dropped.
func RecordStaleResultDiscarded() {
	globalManager.staleResultsDiscarded.Inc()
}

// RecordCatalogMiss increments the catalog fallback counter.
func RecordCatalogMiss() {
	globalManager.catalogMisses.Inc()
}

// UpdateCatalogEntries sets the loaded catalog entry count.
func UpdateCatalogEntries(n int) {
	globalManager.catalogEntries.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request with endpoint, method and status labels.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the current heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime records an average GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
