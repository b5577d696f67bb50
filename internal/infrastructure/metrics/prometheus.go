package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the Aetherium dashboard API
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aetherium_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aetherium_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set/delete, result: hit/miss/success/error
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aetherium_cache_keys",
			Help: "Number of keys currently in cache",
		},
		[]string{"cache_type"},
	)

	// Upstream provider metrics (coinmarketcap, coingecko, gemini)
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_external_api_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aetherium_external_api_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"service", "endpoint"},
	)

	// Symbol resolution
	SymbolLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_symbol_lookups_total",
			Help: "Symbol to provider id lookups by outcome",
		},
		[]string{"result"}, // result: hit/not_found/error
	)

	SnapshotRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_snapshot_refreshes_total",
			Help: "Coin list snapshot refreshes by outcome",
		},
		[]string{"result"}, // result: success/error/stale_fallback
	)

	SnapshotEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aetherium_snapshot_entries",
			Help: "Number of entries in the current coin list snapshot",
		},
	)

	SnapshotAgeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aetherium_snapshot_age_seconds",
			Help: "Age of the coin list snapshot used by the last lookup",
		},
	)

	// Analysis
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_analysis_requests_total",
			Help: "AI analysis generations by outcome",
		},
		[]string{"result"}, // result: ok/truncated/empty/error
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	RateLimitActiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aetherium_rate_limit_active_clients",
			Help: "Number of client buckets tracked by the rate limiter",
		},
	)

	// Listings stream
	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aetherium_stream_clients",
			Help: "Connected listings stream clients",
		},
	)

	StreamPushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_stream_pushes_total",
			Help: "Listings payloads pushed to stream clients",
		},
		[]string{"result"}, // result: success/error
	)

	// Scheduler
	ScheduledJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aetherium_scheduled_job_runs_total",
			Help: "Scheduled job runs by job and outcome",
		},
		[]string{"job", "result"},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aetherium_application_info",
			Help: "Application information",
		},
		[]string{"version", "environment", "go_version"},
	)
)

func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordCacheOperation records a cache operation; result: hit/miss/success/error
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

func UpdateCacheKeys(cacheType string, count int) {
	CacheKeys.WithLabelValues(cacheType).Set(float64(count))
}

// RecordExternalAPIRequest records an upstream call; statusCode 0 means no response was received
func RecordExternalAPIRequest(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

func RecordSymbolLookup(result string) {
	SymbolLookupsTotal.WithLabelValues(result).Inc()
}

func RecordSnapshotRefresh(result string) {
	SnapshotRefreshesTotal.WithLabelValues(result).Inc()
}

func UpdateSnapshot(entries int, ageSeconds float64) {
	SnapshotEntries.Set(float64(entries))
	SnapshotAgeSeconds.Set(ageSeconds)
}

func RecordAnalysis(result string) {
	AnalysisRequestsTotal.WithLabelValues(result).Inc()
}

func RecordRateLimitRequest(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "blocked"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

func UpdateRateLimitClients(count int) {
	RateLimitActiveClients.Set(float64(count))
}

func StreamClientConnected() {
	StreamClients.Inc()
}

func StreamClientDisconnected() {
	StreamClients.Dec()
}

func RecordStreamPush(success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	StreamPushesTotal.WithLabelValues(result).Inc()
}

func RecordScheduledJob(job string, success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	ScheduledJobRunsTotal.WithLabelValues(job, result).Inc()
}

func SetApplicationInfo(version, environment, goVersion string) {
	ApplicationInfo.WithLabelValues(version, environment, goVersion).Set(1)
}
