package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pacer engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	ratioBuckets     []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Polling loop
	ticksTotal   prometheus.Counter
	ticksSkipped *prometheus.CounterVec
	tickLatency  prometheus.Histogram
	readerErrors prometheus.Counter
	panics       prometheus.Counter

	// Move analysis
	movesByRating *prometheus.CounterVec
	moveRatio     prometheus.Histogram
	moveTimeSpent prometheus.Histogram

	// Live state
	momentum    prometheus.Gauge
	position    prometheus.Gauge
	urgency     prometheus.Gauge
	budget      prometheus.Gauge
	userSeconds prometheus.Gauge
	delta       prometheus.Gauge

	// Session lifecycle
	sessionResets prometheus.Counter

	// Frame feed
	feedDrops prometheus.Counter
	feedDepth prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
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
		namespace:        "pacer",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		ratioBuckets:     []float64{0.15, 0.5, 1, 1.5, 2.5, 5, 10},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.ticksTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ticks_total",
		Help:        "Total number of polling ticks processed",
		ConstLabels: labels,
	})

	m.ticksSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ticks_skipped_total",
		Help:        "Ticks that carried no usable clock data, by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.tickLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tick_latency_milliseconds",
		Help:        "Time spent analysing one tick in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.readerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reader_errors_total",
		Help:        "Clock reader failures other than end of input",
		ConstLabels: labels,
	})

	m.panics = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recovered_panics_total",
		Help:        "Panics recovered inside a tick",
		ConstLabels: labels,
	})

	m.movesByRating = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "moves_total",
		Help:        "Completed user moves by rating",
		ConstLabels: labels,
	}, []string{"rating"})

	m.moveRatio = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "move_ratio",
		Help:        "Time spent divided by budget for completed moves",
		Buckets:     m.ratioBuckets,
		ConstLabels: labels,
	})

	m.moveTimeSpent = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "move_time_spent_seconds",
		Help:        "Seconds the user's clock ran per completed move",
		Buckets:     []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 20},
		ConstLabels: labels,
	})

	m.momentum = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "momentum",
		Help:        "Current momentum: 1 gaining, 0 neutral, -1 losing",
		ConstLabels: labels,
	})

	m.position = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "position",
		Help:        "Current position ordinal, 0 dominating to 4 losing",
		ConstLabels: labels,
	})

	m.urgency = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "urgency",
		Help:        "Current urgency ordinal, 0 relaxed to 4 premove",
		ConstLabels: labels,
	})

	m.budget = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "budget_seconds",
		Help:        "Current per-move time budget in seconds",
		ConstLabels: labels,
	})

	m.userSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "user_clock_seconds",
		Help:        "User's remaining clock time in seconds",
		ConstLabels: labels,
	})

	m.delta = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "delta_seconds",
		Help:        "User clock minus opponent clock in seconds",
		ConstLabels: labels,
	})

	m.sessionResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "session_resets_total",
		Help:        "Sessions reset because a new game was detected or requested",
		ConstLabels: labels,
	})

	m.feedDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "feed_dropped_frames_total",
		Help:        "Frames dropped because the presentation feed was full",
		ConstLabels: labels,
	})

	m.feedDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "feed_depth",
		Help:        "Frames waiting in the presentation feed",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordTick counts one processed tick and its analysis latency.
func (m *Manager) RecordTick(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.ticksTotal.Inc()
	m.tickLatency.Observe(latencyMs)
}

// RecordSkippedTick counts a tick without usable clock data.
func (m *Manager) RecordSkippedTick(reason string) {
	if !m.enabled {
		return
	}
	m.ticksSkipped.WithLabelValues(reason).Inc()
}

// RecordMove counts a completed move and observes its ratio and duration.
func (m *Manager) RecordMove(rating string, ratio, timeSpent float64) {
	if !m.enabled {
		return
	}
	m.movesByRating.WithLabelValues(rating).Inc()
	m.moveRatio.Observe(ratio)
	m.moveTimeSpent.Observe(timeSpent)
}

// UpdateState publishes the live classification of the latest tick.
func (m *Manager) UpdateState(position, urgency int, momentum, budget, userSeconds, delta float64) {
	if !m.enabled {
		return
	}
	m.position.Set(float64(position))
	m.urgency.Set(float64(urgency))
	m.momentum.Set(momentum)
	m.budget.Set(budget)
	m.userSeconds.Set(userSeconds)
	m.delta.Set(delta)
}

// Package-level helpers delegate to the global manager.

// RecordTick counts one processed tick and its analysis latency.
func RecordTick(latencyMs float64) { globalManager.RecordTick(latencyMs) }

// RecordSkippedTick counts a tick without usable clock data.
func RecordSkippedTick(reason string) { globalManager.RecordSkippedTick(reason) }

// RecordMove counts a completed move and observes its ratio and duration.
func RecordMove(rating string, ratio, timeSpent float64) {
	globalManager.RecordMove(rating, ratio, timeSpent)
}

// UpdateState publishes the live classification of the latest tick.
func UpdateState(position, urgency int, momentum, budget, userSeconds, delta float64) {
	globalManager.UpdateState(position, urgency, momentum, budget, userSeconds, delta)
}

// RecordReaderError counts a failed clock read.
func RecordReaderError() {
	if globalManager.enabled {
		globalManager.readerErrors.Inc()
	}
}

// RecordRecoveredPanic counts a panic caught inside a tick.
func RecordRecoveredPanic() {
	if globalManager.enabled {
		globalManager.panics.Inc()
	}
}

// RecordSessionReset counts a session reset.
func RecordSessionReset() {
	if globalManager.enabled {
		globalManager.sessionResets.Inc()
	}
}

// RecordFeedDrop counts a frame dropped by a full feed.
func RecordFeedDrop() {
	if globalManager.enabled {
		globalManager.feedDrops.Inc()
	}
}

// UpdateFeedDepth sets the number of frames waiting in the feed.
func UpdateFeedDepth(depth int) {
	if globalManager.enabled {
		globalManager.feedDepth.Set(float64(depth))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// GetRegistry returns the custom registry for HTTP handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
