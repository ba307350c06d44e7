// Package metrics provides Prometheus metrics for the rovia ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Ranking path
	rankingLatency   prometheus.Histogram
	candidatesRanked prometheus.Counter
	emptyResults     prometheus.Counter
	requestsByMode   *prometheus.CounterVec

	// Learned ranker / model registry
	modelLoads         prometheus.Counter
	modelAbsent        prometheus.Gauge
	inferenceFallbacks prometheus.Counter

	// Event log
	impressionsLogged prometheus.Counter
	clicksLogged      prometheus.Counter
	duplicateClicks   prometheus.Counter
	logWriteErrors    prometheus.Counter

	// Parts path
	partsSearches prometheus.Counter
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry avoids the default Go runtime collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "rovia",
		subsystem: "ranking",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initCollectors()
	return m
}

func (m *Manager) initCollectors() {
	factory := promauto.With(m.registry)

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method"})

	m.rankingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rank_duration_ms",
		Help:      "Time spent computing one ranking pass in milliseconds.",
		Buckets:   m.buckets,
	})

	m.candidatesRanked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_ranked_total",
		Help:      "Total candidates scored across all ranking passes.",
	})

	m.emptyResults = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_results_total",
		Help:      "Ranking requests that matched no candidate.",
	})

	m.requestsByMode = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_by_mode_total",
		Help:      "Ranking requests by serving mode (rule_based, learned, learned_fallback).",
	}, []string{"mode"})

	m.modelLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_loads_total",
		Help:      "Successful model artifact loads.",
	})

	m.modelAbsent = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_absent",
		Help:      "1 when the registry has confirmed the artifact is absent.",
	})

	m.inferenceFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inference_fallbacks_total",
		Help:      "Requests that degraded to rule-based order after a model error.",
	})

	m.impressionsLogged = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "impressions_logged_total",
		Help:      "Impression events appended to the event log.",
	})

	m.clicksLogged = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clicks_logged_total",
		Help:      "Click events appended to the event log.",
	})

	m.duplicateClicks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_clicks_total",
		Help:      "Click posts suppressed by the idempotency cache.",
	})

	m.logWriteErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "log_write_errors_total",
		Help:      "Failed event log appends. Any increase is a data-quality incident.",
	})

	m.partsSearches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parts_searches_total",
		Help:      "Spare-parts search requests.",
	})
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func RecordRankingLatency(ms float64) {
	globalManager.rankingLatency.Observe(ms)
}

func RecordCandidatesRanked(n int) {
	globalManager.candidatesRanked.Add(float64(n))
}

func RecordEmptyResult() {
	globalManager.emptyResults.Inc()
}

func RecordRequestMode(mode string) {
	globalManager.requestsByMode.WithLabelValues(mode).Inc()
}

func RecordModelLoad() {
	globalManager.modelLoads.Inc()
	globalManager.modelAbsent.Set(0)
}

func RecordModelAbsent() {
	globalManager.modelAbsent.Set(1)
}

func RecordInferenceFallback() {
	globalManager.inferenceFallbacks.Inc()
}

func RecordImpressionLogged() {
	globalManager.impressionsLogged.Inc()
}

func RecordClickLogged() {
	globalManager.clicksLogged.Inc()
}

func RecordDuplicateClick() {
	globalManager.duplicateClicks.Inc()
}

func RecordLogWriteError() {
	globalManager.logWriteErrors.Inc()
}

func RecordPartsSearch() {
	globalManager.partsSearches.Inc()
}
