// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisErrors   *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	SafelistHits     prometheus.Counter

	// Provider metrics
	ProviderCallLatency *prometheus.HistogramVec
	ProviderErrors      *prometheus.CounterVec

	// Narration metrics
	LLMCallLatency prometheus.Histogram
	LLMFallbacks   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Transport metrics
	WSSessionsActive prometheus.Gauge
	WSMessagesTotal  *prometheus.CounterVec

	// Health metrics
	LastSuccessfulAnalysis prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tokenbrain"
	}

	return &Metrics{
		// Analysis metrics
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "completed_total",
			Help:      "Total number of completed analyses by risk level",
		}, []string{"level"}),
		AnalysisErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "errors_total",
			Help:      "Total number of failed analyses by stage",
		}, []string{"stage"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "End-to-end analysis duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		SafelistHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "safelist_hits_total",
			Help:      "Total number of analyses resolved by the safelist",
		}),

		// Provider metrics
		ProviderCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tokendata",
			Name:      "provider_call_latency_seconds",
			Help:      "Token data provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tokendata",
			Name:      "provider_errors_total",
			Help:      "Total number of provider errors by type",
		}, []string{"error_type"}),

		// Narration metrics
		LLMCallLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "explain",
			Name:      "llm_call_latency_seconds",
			Help:      "LLM call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		LLMFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "explain",
			Name:      "llm_fallbacks_total",
			Help:      "Total number of narrations served by the template fallback",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Transport metrics
		WSSessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "ws_sessions_active",
			Help:      "Number of open WebSocket chat sessions",
		}),
		WSMessagesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "ws_messages_total",
			Help:      "Total number of WebSocket messages by direction",
		}, []string{"direction"}),

		// Health metrics
		LastSuccessfulAnalysis: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_analysis_timestamp",
			Help:      "Unix timestamp of last successful analysis",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordAnalysis records one completed analysis.
func RecordAnalysis(level string, durationSeconds float64) {
	DefaultMetrics.AnalysesTotal.WithLabelValues(level).Inc()
	DefaultMetrics.AnalysisDuration.Observe(durationSeconds)
	DefaultMetrics.LastSuccessfulAnalysis.SetToCurrentTime()
}

// RecordAnalysisError records a failed analysis by pipeline stage.
func RecordAnalysisError(stage string) {
	DefaultMetrics.AnalysisErrors.WithLabelValues(stage).Inc()
}

// RecordSafelistHit increments the safelist hit counter.
func RecordSafelistHit() {
	DefaultMetrics.SafelistHits.Inc()
}

// RecordProviderCall records a provider call latency.
func RecordProviderCall(method string, seconds float64) {
	DefaultMetrics.ProviderCallLatency.WithLabelValues(method).Observe(seconds)
}

// RecordProviderError records a provider error.
func RecordProviderError(errorType string) {
	DefaultMetrics.ProviderErrors.WithLabelValues(errorType).Inc()
}

// RecordLLMCall records an LLM call latency.
func RecordLLMCall(seconds float64) {
	DefaultMetrics.LLMCallLatency.Observe(seconds)
}

// RecordLLMFallback increments the fallback narration counter.
func RecordLLMFallback() {
	DefaultMetrics.LLMFallbacks.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// WSSessionOpened increments the active session gauge.
func WSSessionOpened() {
	DefaultMetrics.WSSessionsActive.Inc()
}

// WSSessionClosed decrements the active session gauge.
func WSSessionClosed() {
	DefaultMetrics.WSSessionsActive.Dec()
}

// RecordWSMessage counts one WebSocket message.
func RecordWSMessage(direction string) {
	DefaultMetrics.WSMessagesTotal.WithLabelValues(direction).Inc()
}
