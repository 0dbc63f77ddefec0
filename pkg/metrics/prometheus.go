// Package metrics provides Prometheus metrics for the flick scroll daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the daemon.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Engine metrics
	eventsObserved    *prometheus.CounterVec
	injections        prometheus.Counter
	injectionsDropped prometheus.Counter
	injectorErrors    prometheus.Counter
	eventLogSize      prometheus.Gauge
	outstanding       *prometheus.GaugeVec
	userVelocity      prometheus.Gauge
	multiplier        prometheus.Histogram
	processingLatency prometheus.Histogram

	// Pump metrics
	pumpCapacity    prometheus.Gauge
	pumpSize        prometheus.Gauge
	pumpUtilization prometheus.Gauge
	pumpEnqueues    prometheus.Counter
	pumpDequeues    prometheus.Counter
	pumpDrops       prometheus.Counter

	// Debug tap metrics
	debugClients prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "flick",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsObserved = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_observed_total",
			Help:      "Total number of scroll events observed, by classified origin",
		},
		[]string{"origin"},
	)

	m.injections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injections_total",
		Help:      "Total number of synthetic scroll events injected",
	})

	m.injectionsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injections_suppressed_total",
		Help:      "Total number of injections suppressed by the feedback guard",
	})

	m.injectorErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injector_errors_total",
		Help:      "Total number of injector failures (fatal to the process)",
	})

	m.eventLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_log_size",
		Help:      "Number of scroll events currently retained in the velocity window",
	})

	m.outstanding = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "outstanding_generated",
			Help:      "Net self-injected scroll not yet echoed back, per axis",
		},
		[]string{"axis"},
	)

	m.userVelocity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "user_velocity",
		Help:      "Latest estimated user scroll velocity magnitude (units/sec)",
	})

	m.multiplier = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "acceleration_multiplier",
		Help:      "Acceleration multiplier computed per observed event",
		Buckets:   []float64{1, 1.5, 2, 3, 5, 8, 13, 21, 34, 55},
	})

	m.processingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "processing_latency_milliseconds",
		Help:      "Per-event engine processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pumpCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "capacity",
		Help:      "Maximum delivery pump capacity",
	})

	m.pumpSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "size",
		Help:      "Current number of queued deliveries",
	})

	m.pumpUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "utilization_ratio",
		Help:      "Pump utilization ratio (current size / capacity)",
	})

	m.pumpEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "enqueue_total",
		Help:      "Total number of deliveries enqueued",
	})

	m.pumpDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "dequeue_total",
		Help:      "Total number of deliveries dequeued",
	})

	m.pumpDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "pump",
		Name:      "dropped_total",
		Help:      "Total number of deliveries dropped due to a full pump",
	})

	m.debugClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "debug",
		Name:      "websocket_clients",
		Help:      "Number of connected debug websocket clients",
	})
}

// RecordEventObserved counts an observed scroll event by origin.
func RecordEventObserved(origin string) {
	globalManager.eventsObserved.WithLabelValues(origin).Inc()
}

// RecordInjection increments the synthetic injection counter.
func RecordInjection() {
	globalManager.injections.Inc()
}

// RecordInjectionSuppressed counts an injection suppressed by the guard.
func RecordInjectionSuppressed() {
	globalManager.injectionsDropped.Inc()
}

// RecordInjectorError counts an injector failure.
func RecordInjectorError() {
	globalManager.injectorErrors.Inc()
}

// UpdateEventLogSize sets the current event log size.
func UpdateEventLogSize(size int) {
	globalManager.eventLogSize.Set(float64(size))
}

// UpdateOutstanding sets the outstanding generated scroll per axis.
func UpdateOutstanding(x, y float64) {
	globalManager.outstanding.WithLabelValues("x").Set(x)
	globalManager.outstanding.WithLabelValues("y").Set(y)
}

// UpdateUserVelocity sets the latest estimated user velocity magnitude.
func UpdateUserVelocity(v float64) {
	globalManager.userVelocity.Set(v)
}

// ObserveMultiplier records a computed acceleration multiplier.
func ObserveMultiplier(m float64) {
	globalManager.multiplier.Observe(m)
}

// RecordProcessingLatency records per-event processing latency in milliseconds.
func RecordProcessingLatency(latencyMs float64) {
	globalManager.processingLatency.Observe(latencyMs)
}

// UpdatePumpCapacity sets the pump capacity gauge.
func UpdatePumpCapacity(capacity int) {
	globalManager.pumpCapacity.Set(float64(capacity))
}

// UpdatePumpSize sets the current pump size.
func UpdatePumpSize(size int) {
	globalManager.pumpSize.Set(float64(size))
}

// UpdatePumpUtilization sets the pump utilization ratio.
func UpdatePumpUtilization(utilization float64) {
	globalManager.pumpUtilization.Set(utilization)
}

// RecordPumpEnqueue increments the pump enqueue counter.
func RecordPumpEnqueue() {
	globalManager.pumpEnqueues.Inc()
}

// RecordPumpDequeue increments the pump dequeue counter.
func RecordPumpDequeue() {
	globalManager.pumpDequeues.Inc()
}

// RecordPumpDrop counts a delivery dropped because the pump was full.
func RecordPumpDrop() {
	globalManager.pumpDrops.Inc()
}

// UpdateDebugClients sets the number of connected debug websocket clients.
func UpdateDebugClients(count int) {
	globalManager.debugClients.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
