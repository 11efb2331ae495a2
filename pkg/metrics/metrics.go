// Package metrics exposes Prometheus instrumentation for the live layer.
//
// Metrics are created lazily on first use through a process-wide singleton,
// so importing this package costs nothing until Init or a Record function
// runs. Expose them with promhttp.Handler on the server mux.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tether-ui/tether/pkg/tether"
)

// Config configures the metric set.
type Config struct {
	// Namespace is the metrics namespace (default: "tether").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metric set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the dispatch duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "tether",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	eventsTotal      *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	dispatchErrors   *prometheus.CounterVec
	patchesSent      prometheus.Counter
	activeSessions   prometheus.Gauge
	wsErrors         *prometheus.CounterVec
}

var (
	global   *metrics
	globalMu sync.Mutex
)

func initMetrics(config Config) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "events_total",
			Help:        "Total number of client events dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "dispatch_duration_seconds",
			Help:        "Event dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		dispatchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "dispatch_errors_total",
			Help:        "Total number of dispatch errors by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Init creates the metric set with the given options. It is safe to call
// more than once; only the first call registers anything.
func Init(opts ...Option) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMu.Lock()
	if global == nil {
		global = initMetrics(config)
	}
	globalMu.Unlock()
}

func get() *metrics {
	globalMu.Lock()
	m := global
	globalMu.Unlock()
	return m
}

// RecordDispatch records one dispatched event with its outcome and duration.
func RecordDispatch(event string, err error, elapsed time.Duration) {
	m := get()
	if m == nil {
		return
	}
	m.dispatchDuration.WithLabelValues(event).Observe(elapsed.Seconds())
	status := "success"
	if err != nil {
		status = "error"
		m.dispatchErrors.WithLabelValues(event, categorizeError(err)).Inc()
	}
	m.eventsTotal.WithLabelValues(event, status).Inc()
}

// RecordPatches records the number of patches flushed to a client.
func RecordPatches(count int) {
	if m := get(); m != nil {
		m.patchesSent.Add(float64(count))
	}
}

// RecordSessionOpen records a new WebSocket session.
func RecordSessionOpen() {
	if m := get(); m != nil {
		m.activeSessions.Inc()
	}
}

// RecordSessionClose records a WebSocket session ending.
func RecordSessionClose() {
	if m := get(); m != nil {
		m.activeSessions.Dec()
	}
}

// RecordWebSocketError records a WebSocket error by type.
func RecordWebSocketError(errType string) {
	if m := get(); m != nil {
		m.wsErrors.WithLabelValues(errType).Inc()
	}
}

// categorizeError buckets dispatch errors into a fixed label set so error
// messages never become high-cardinality labels.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, tether.ErrReentrantUpdateLimit):
		return "update_limit"
	case errors.Is(err, tether.ErrUseAfterDispose):
		return "use_after_dispose"
	case errors.Is(err, tether.ErrNotMounted):
		return "not_mounted"
	default:
		return "internal"
	}
}
