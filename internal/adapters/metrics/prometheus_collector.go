package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

const (
	// Namespace for all metrics
	namespace = "construction_sim"
	// Subsystem for game metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is the singleton game metrics collector.
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder
)

// GameMetricsRecorder defines the interface for recording game events.
// Application handlers record through the package-level helpers below.
type GameMetricsRecorder interface {
	RecordGameStarted(sessionID string)
	RecordDecision(sessionID string, scenario decision.Scenario, accepted bool)
	RecordCycle(sessionID string, report simulation.CycleReport, snapshot project.Snapshot)
	RecordGameFinished(sessionID string, ending project.Ending, kpi float64)
	ForgetSession(sessionID string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// RecordGameStarted records a new or restarted run globally
func RecordGameStarted(sessionID string) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameStarted(sessionID)
	}
}

// RecordDecision records a submitted decision globally
func RecordDecision(sessionID string, scenario decision.Scenario, accepted bool) {
	if globalGameCollector != nil {
		globalGameCollector.RecordDecision(sessionID, scenario, accepted)
	}
}

// RecordCycle records the outcome of a monthly cycle globally
func RecordCycle(sessionID string, report simulation.CycleReport, snapshot project.Snapshot) {
	if globalGameCollector != nil {
		globalGameCollector.RecordCycle(sessionID, report, snapshot)
	}
}

// RecordGameFinished records the end of a run globally
func RecordGameFinished(sessionID string, ending project.Ending, kpi float64) {
	if globalGameCollector != nil {
		globalGameCollector.RecordGameFinished(sessionID, ending, kpi)
	}
}

// ForgetSession drops per-session series globally
func ForgetSession(sessionID string) {
	if globalGameCollector != nil {
		globalGameCollector.ForgetSession(sessionID)
	}
}
