package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	authenticationEventsTotal *prometheus.CounterVec
	ledgerWritesTotal         *prometheus.CounterVec
	categoriesResolvedTotal   prometheus.Counter
	assistantRequestsTotal    *prometheus.CounterVec
	assistantDuration         prometheus.Histogram
	assistantPromptSize       prometheus.Histogram
	circuitBreakerState       *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the service metrics on reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		ledgerWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_writes_total",
				Help: "Total number of transaction and budget writes",
			},
			[]string{"entity", "operation", "status"},
		),
		categoriesResolvedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_categories_resolved_total",
				Help: "Total number of category name resolutions on ledger writes",
			},
		),
		assistantRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_requests_total",
				Help: "Total number of assistant requests by outcome",
			},
			[]string{"status"},
		),
		assistantDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_request_duration_seconds",
				Help:    "Latency of chat completion calls in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),
		assistantPromptSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assistant_prompt_transactions",
				Help:    "Number of transactions embedded in assistant prompts",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "ledger_write":
		m.ledgerWritesTotal.WithLabelValues(tags["entity"], tags["operation"], tags["status"]).Inc()
	case "category_resolved":
		m.categoriesResolvedTotal.Inc()
	case "assistant_request":
		if status := tags["status"]; status != "" {
			m.assistantRequestsTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "assistant_request":
		m.assistantDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "circuit_breaker_state":
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	case "assistant_prompt_transactions":
		m.assistantPromptSize.Observe(value)
	}
}
