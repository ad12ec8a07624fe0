package metrics

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/construction-sim/internal/domain/game"
)

// Request outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeGameOver = "game_over"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RequestMetricsCollector records mediator traffic: how long each command
// or query took and how it ended
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		// Game requests touch an in-memory store, so buckets stay sub-second
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "request_duration_seconds",
				Help:      "Command and query handling time",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1},
			},
			[]string{"request", "kind"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "requests_total",
				Help:      "Requests handled by type, kind and outcome",
			},
			[]string{"request", "kind", "outcome"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "requests_in_flight",
				Help:      "Requests currently being handled",
			},
		),
	}
}

// Register registers all request metrics with the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal, c.inFlight} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *RequestMetricsCollector) RecordRequest(name string, duration float64, err error) {
	kind := requestKind(name)
	c.requestDuration.WithLabelValues(name, kind).Observe(duration)
	c.requestsTotal.WithLabelValues(name, kind, classifyOutcome(err)).Inc()
}

// requestKind tells commands from queries by their type name suffix
func requestKind(name string) string {
	switch {
	case strings.HasSuffix(name, "Query"):
		return "query"
	case strings.HasSuffix(name, "Command"):
		return "command"
	default:
		return "unknown"
	}
}

// classifyOutcome separates expected game rejections from failures
func classifyOutcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var overErr *game.GameOverError
	if errors.As(err, &overErr) {
		return OutcomeGameOver
	}
	var notFound *game.ErrSessionNotFound
	if errors.As(err, &notFound) {
		return OutcomeNotFound
	}
	return OutcomeError
}
