package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

// GameMetricsCollector handles all game metrics (decisions, cycles, risks, scores)
type GameMetricsCollector struct {
	// Run lifecycle metrics
	gamesStarted  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	finalKPI      prometheus.Histogram

	// Turn metrics
	decisionsTotal *prometheus.CounterVec
	cyclesTotal    *prometheus.CounterVec

	// Risk metrics
	riskEventsTotal *prometheus.CounterVec
	riskCostTotal   prometheus.Counter

	// Per-session state
	budgetRemaining *prometheus.GaugeVec
	scopeProgress   *prometheus.GaugeVec
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		gamesStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_started_total",
				Help:      "Total number of runs started or restarted",
			},
		),

		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "games_finished_total",
				Help:      "Total number of finished runs by ending",
			},
			[]string{"ending"},
		),

		finalKPI: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "final_kpi",
				Help:      "Distribution of final KPI scores",
				Buckets:   []float64{50, 60, 70, 75, 80, 85, 90, 95, 100},
			},
		),

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decisions_total",
				Help:      "Total number of submitted decisions by scenario and validity",
			},
			[]string{"scenario", "accepted"},
		),

		cyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycles_total",
				Help:      "Total number of monthly cycles by outcome",
			},
			[]string{"outcome"},
		),

		riskEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "risk_events_total",
				Help:      "Total number of triggered risk events by code",
			},
			[]string{"code"},
		),

		riskCostTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "risk_cost_toman_total",
				Help:      "Total budget lost to risk events",
			},
		),

		budgetRemaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "budget_remaining_toman",
				Help:      "Current budget of each session",
			},
			[]string{"session"},
		),

		scopeProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "scope_progress_phases",
				Help:      "Completed phases of each session",
			},
			[]string{"session"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.gamesStarted,
		c.gamesFinished,
		c.finalKPI,
		c.decisionsTotal,
		c.cyclesTotal,
		c.riskEventsTotal,
		c.riskCostTotal,
		c.budgetRemaining,
		c.scopeProgress,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordGameStarted counts a started run
func (c *GameMetricsCollector) RecordGameStarted(sessionID string) {
	c.gamesStarted.Inc()
	c.budgetRemaining.DeleteLabelValues(sessionID)
	c.scopeProgress.DeleteLabelValues(sessionID)
}

// RecordDecision counts a submitted decision
func (c *GameMetricsCollector) RecordDecision(sessionID string, scenario decision.Scenario, accepted bool) {
	c.decisionsTotal.WithLabelValues(scenario.String(), strconv.FormatBool(accepted)).Inc()
}

// RecordCycle records a monthly cycle and the resulting session state
func (c *GameMetricsCollector) RecordCycle(sessionID string, report simulation.CycleReport, snapshot project.Snapshot) {
	c.cyclesTotal.WithLabelValues(string(report.Outcome)).Inc()

	for _, code := range report.Triggered {
		c.riskEventsTotal.WithLabelValues(code).Inc()
	}
	if report.RiskCost > 0 {
		c.riskCostTotal.Add(float64(report.RiskCost))
	}

	c.budgetRemaining.WithLabelValues(sessionID).Set(float64(snapshot.Budget))
	c.scopeProgress.WithLabelValues(sessionID).Set(float64(snapshot.ScopeProgress))
}

// RecordGameFinished records a finished run and its final KPI
func (c *GameMetricsCollector) RecordGameFinished(sessionID string, ending project.Ending, kpi float64) {
	c.gamesFinished.WithLabelValues(string(ending)).Inc()
	c.finalKPI.Observe(kpi)
}

// ForgetSession removes the per-session gauges
func (c *GameMetricsCollector) ForgetSession(sessionID string) {
	c.budgetRemaining.DeleteLabelValues(sessionID)
	c.scopeProgress.DeleteLabelValues(sessionID)
}
