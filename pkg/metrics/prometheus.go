// Package metrics provides Prometheus metrics for the reelscore evaluation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics - evaluation throughput and quality
	evaluationsSubmitted prometheus.Counter
	reportsCreated       prometheus.Counter
	duplicateReports     prometheus.Counter
	scoringLatency       prometheus.Histogram
	submissionsClaimed   prometheus.Counter
	submissionsCompleted prometheus.Counter

	// Rubric definition metrics
	formsCreated   prometheus.Counter
	formsUpgraded  prometheus.Counter
	formsActivated prometheus.Counter

	// Notification pipeline metrics
	notificationsEnqueued prometheus.Counter
	notificationsDropped  prometheus.Counter
	notificationsSent     prometheus.Counter
	notificationErrors    prometheus.Counter

	// Queue health metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge

	// Worker metrics
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge

	// Scale indicators
	totalReports prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "reelscore",
		subsystem:        "evaluation",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // metric registration is inherently long
	auto := promauto.With(m.registry)

	m.evaluationsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_submitted_total",
		Help:      "Total number of evaluation submissions accepted for processing",
	})

	m.reportsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_created_total",
		Help:      "Total number of evaluation reports persisted",
	})

	m.duplicateReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_duplicate_total",
		Help:      "Total number of rejected duplicate reports (one-report-per-submission conflicts)",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of rubric scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.submissionsClaimed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_claimed_total",
		Help:      "Total number of film submissions claimed by evaluators",
	})

	m.submissionsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_completed_total",
		Help:      "Total number of film submissions advanced to completed",
	})

	m.formsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "forms_created_total",
		Help:      "Total number of default rubric definitions synthesized",
	})

	m.formsUpgraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "forms_upgraded_total",
		Help:      "Total number of stale system-default rubric definitions upgraded in place",
	})

	m.formsActivated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "forms_activated_total",
		Help:      "Total number of rubric definition activations",
	})

	m.notificationsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of notification events enqueued for delivery",
	})

	m.notificationsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notification events dropped on backpressure",
	})

	m.notificationsSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification events handed to the notifier",
	})

	m.notificationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_errors_total",
		Help:      "Total number of notifier delivery failures (best-effort, never fatal)",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_size",
		Help:      "Current size of the notification queue (backlog indicator)",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_capacity",
		Help:      "Configured capacity of the notification queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notification_queue_utilization",
		Help:      "Queue utilization ratio between 0 and 1",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of notification workers",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Histogram of notification processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
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

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component and reason",
		},
		[]string{"component", "reason"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.totalReports = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_reports",
		Help:      "Total number of evaluation reports stored (business scale)",
	})
}

// GetRegistry returns the registry all global metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recorders delegating to the global manager.

func RecordEvaluationSubmitted() { globalManager.evaluationsSubmitted.Inc() }
func RecordReportCreated()       { globalManager.reportsCreated.Inc() }
func RecordDuplicateReport()     { globalManager.duplicateReports.Inc() }
func RecordSubmissionClaimed()   { globalManager.submissionsClaimed.Inc() }
func RecordSubmissionCompleted() { globalManager.submissionsCompleted.Inc() }
func RecordFormCreated()         { globalManager.formsCreated.Inc() }
func RecordFormUpgraded()        { globalManager.formsUpgraded.Inc() }
func RecordFormActivated()       { globalManager.formsActivated.Inc() }

func RecordScoringLatency(ms float64) { globalManager.scoringLatency.Observe(ms) }

func RecordNotificationEnqueued() { globalManager.notificationsEnqueued.Inc() }
func RecordNotificationDropped()  { globalManager.notificationsDropped.Inc() }
func RecordNotificationSent()     { globalManager.notificationsSent.Inc() }
func RecordNotificationError()    { globalManager.notificationErrors.Inc() }

func UpdateQueueSize(n int)             { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)         { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64)  { globalManager.queueUtilization.Set(r) }
func UpdateWorkerCount(n int)           { globalManager.workerCount.Set(float64(n)) }
func UpdateTotalReports(n int)          { globalManager.totalReports.Set(float64(n)) }
func UpdateSystemMemoryUsage(b uint64)  { globalManager.systemMemoryUsage.Set(float64(b)) }
func UpdateSystemGoroutineCount(n int)  { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordWorkerLatency(ms float64)    { globalManager.workerProcessingLatency.Observe(ms) }

// RecordHTTPRequest records a single HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error attributed to a component.
func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}
