package prometheus

import (
	"menu-service/pkg/config"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Menu resolution metrics
	MenuResolutionsCounter prometheus.CounterVec
	MenuResolutionDuration prometheus.HistogramVec
	MenuSectionsReturned   prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Navigation configuration metrics
	NavigationOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Menu resolution metrics
	MenuResolutionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_resolutions_total",
			Help: "Total number of menu resolutions",
		},
		[]string{"outcome", "view"},
	)

	MenuResolutionDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_resolution_duration_seconds",
			Help:    "Duration of menu resolutions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	MenuSectionsReturned = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_sections_returned",
			Help:    "Number of sections returned per resolution",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"view"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Navigation configuration metrics
	NavigationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_navigation_operations_total",
			Help: "Total number of navigation configuration operations",
		},
		[]string{"entity", "operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordMenuResolution increments the resolution counter and observes its duration
func RecordMenuResolution(outcome, view string, startTime time.Time) {
	MenuResolutionsCounter.WithLabelValues(outcome, view).Inc()
	MenuResolutionDuration.WithLabelValues(outcome).Observe(time.Since(startTime).Seconds())
}

// RecordNavigationOperation increments the counter for configuration operations
func RecordNavigationOperation(entity, operation string) {
	NavigationOperationsCounter.WithLabelValues(entity, operation).Inc()
}
