// Package metrics counts webhook traffic. A CLI process is too short-lived to
// be scraped, so the registry is written to a node_exporter textfile when
// the process finishes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
)

// WebhookMetrics holds the collectors for calls to the remote service. All
// methods are safe on a nil receiver so callers can run without metrics.
type WebhookMetrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	readFailures    *prometheus.CounterVec
}

// New creates the collectors on a private registry
func New() *WebhookMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &WebhookMetrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shifttrack_webhook_requests_total",
				Help: "Total number of webhook calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shifttrack_webhook_request_duration_seconds",
				Help:    "Webhook call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		readFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shifttrack_read_failures_total",
				Help: "Listing and profile reads that degraded to an empty result",
			},
			[]string{"endpoint"},
		),
	}
}

// ObserveRequest records one completed webhook call
func (m *WebhookMetrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ReadFailure records a read path that swallowed an error
func (m *WebhookMetrics) ReadFailure(endpoint string) {
	if m == nil {
		return
	}
	m.readFailures.WithLabelValues(endpoint).Inc()
}

// Registry exposes the collectors for tests and custom exporters
func (m *WebhookMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the current values in the Prometheus text format
func (m *WebhookMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
