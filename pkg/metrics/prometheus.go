// Package metrics provides Prometheus metrics for the exercise tracker service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Latencies are recorded in milliseconds; prometheus.DefBuckets assume seconds.
var (
	defaultLatencyBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // defaults
	defaultLogSizeBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000}                      //nolint:gochecknoglobals // defaults
)

// Manager manages all Prometheus metrics for the tracker service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	logSizeBuckets   []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics
	usersCreated      prometheus.Counter
	exercisesLogged   prometheus.Counter
	logQueries        prometheus.Counter
	logEntriesServed  prometheus.Histogram
	validationErrors  *prometheus.CounterVec
	notFoundLookups   *prometheus.CounterVec
	serviceOpDuration *prometheus.HistogramVec

	// Store Metrics
	storeUsers        prometheus.Gauge
	storeExercises    prometheus.Gauge
	storeIDCollisions prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tracker",
		subsystem:        "api",
		histogramBuckets: defaultLatencyBuckets,
		logSizeBuckets:   defaultLogSizeBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often gauge-style system metrics should be sampled.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// Enabled reports whether recording functions have any effect.
func (m *Manager) Enabled() bool {
	return m.enabled
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric family
	auto := promauto.With(m.registry)

	m.usersCreated = auto.NewCounter(m.counterOpts(
		"users_created_total",
		"Total number of users created",
	))

	m.exercisesLogged = auto.NewCounter(m.counterOpts(
		"exercises_logged_total",
		"Total number of exercises appended to user logs",
	))

	m.logQueries = auto.NewCounter(m.counterOpts(
		"log_queries_total",
		"Total number of exercise log queries served",
	))

	m.logEntriesServed = auto.NewHistogram(m.histogramOpts(
		"log_entries_served",
		"Number of log entries returned per log query",
		m.logSizeBuckets,
	))

	m.validationErrors = auto.NewCounterVec(
		m.counterOpts("validation_errors_total", "Requests rejected by input validation"),
		[]string{"operation"},
	)

	m.notFoundLookups = auto.NewCounterVec(
		m.counterOpts("not_found_total", "Lookups of unknown user ids"),
		[]string{"operation"},
	)

	m.serviceOpDuration = auto.NewHistogramVec(
		m.histogramOpts("service_operation_duration_milliseconds", "Service operation latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)

	m.storeUsers = auto.NewGauge(m.gaugeOpts(
		"store_users",
		"Number of users held in the store",
	))

	m.storeExercises = auto.NewGauge(m.gaugeOpts(
		"store_exercises",
		"Number of exercises held in the store across all users",
	))

	m.storeIDCollisions = auto.NewCounter(m.counterOpts(
		"store_id_collisions_total",
		"Generated user ids rejected because they were already taken",
	))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes",
		"System memory usage in bytes",
	))

	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count",
		"Number of goroutines",
	))

	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Default returns the process-wide manager behind the package functions.
func Default() *Manager {
	return globalManager
}

// RecordUserCreated increments the users created counter.
func RecordUserCreated() {
	if !globalManager.enabled {
		return
	}
	globalManager.usersCreated.Inc()
}

// RecordExerciseLogged increments the exercises logged counter.
func RecordExerciseLogged() {
	if !globalManager.enabled {
		return
	}
	globalManager.exercisesLogged.Inc()
}

// RecordLogQuery counts a served log query and the number of entries returned.
func RecordLogQuery(entries int) {
	if !globalManager.enabled {
		return
	}
	globalManager.logQueries.Inc()
	globalManager.logEntriesServed.Observe(float64(entries))
}

// RecordValidationError counts an input rejected by operation.
func RecordValidationError(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.validationErrors.WithLabelValues(operation).Inc()
}

// RecordNotFound counts a lookup of an unknown user by operation.
func RecordNotFound(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.notFoundLookups.WithLabelValues(operation).Inc()
}

// RecordServiceLatency records a service operation's latency in milliseconds.
func RecordServiceLatency(operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.serviceOpDuration.WithLabelValues(operation).Observe(latencyMs)
}

// Store Metrics Functions.

// UpdateStoreUsers sets the number of users in the store.
func UpdateStoreUsers(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeUsers.Set(float64(count))
}

// UpdateStoreExercises sets the number of exercises in the store.
func UpdateStoreExercises(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeExercises.Set(float64(count))
}

// RecordIDCollision increments the id collision counter.
func RecordIDCollision() {
	if !globalManager.enabled {
		return
	}
	globalManager.storeIDCollisions.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
