// Package simulation advances a construction project one month at a time.
//
// Each turn is one ApplyDecision followed by one RunMonthlyCycle. Morale
// gates schedule progress as a single binary threshold per month rather than
// scaling throughput continuously.
package simulation

import (
	"math"
	"time"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

const (
	// MoraleBaseline is the morale at which productivity is nominal
	MoraleBaseline = 80.0

	// MaxTimeImpact is the largest slowdown at which a phase still completes
	MaxTimeImpact = 1.2

	// MonthlyMoraleErosion and MonthlyQualityErosion are applied after every decision
	MonthlyMoraleErosion  = 2.0
	MonthlyQualityErosion = 0.5

	// WeeksPerMonth converts event delays for the log
	WeeksPerMonth = 4.0
)

// CycleOutcome describes what a monthly cycle did
type CycleOutcome string

const (
	// OutcomeSkipped means the project was already complete
	OutcomeSkipped CycleOutcome = "SKIPPED"

	// OutcomeHalted means the budget floor stopped the run
	OutcomeHalted CycleOutcome = "HALTED"

	// OutcomeAdvanced means a phase was completed
	OutcomeAdvanced CycleOutcome = "ADVANCED"

	// OutcomeDelayed means the month passed without completing a phase
	OutcomeDelayed CycleOutcome = "DELAYED"
)

// CycleReport summarises one call to RunMonthlyCycle
type CycleReport struct {
	Month     int
	Outcome   CycleOutcome
	Triggered []string // risk codes in catalog order
	RiskCost  int64
	RiskDelay float64
}

// Engine applies decisions and monthly cycles to a project state.
// An Engine holds no run state of its own; one instance may serve a single
// session at a time.
type Engine struct {
	risks *risk.Catalog
	rng   shared.RandomSource
}

// NewEngine creates an engine. A nil catalog uses the built-in risk table;
// a nil rng uses a generator seeded from the current time.
func NewEngine(risks *risk.Catalog, rng shared.RandomSource) *Engine {
	if risks == nil {
		risks = risk.DefaultCatalog()
	}
	if rng == nil {
		rng = shared.NewSeededRandom(time.Now().UnixNano())
	}
	return &Engine{risks: risks, rng: rng}
}

// ApplyDecision applies the option's deltas followed by the fixed monthly
// erosion. It never fails and does not write to the log.
func (e *Engine) ApplyDecision(s *project.State, opt decision.Option) {
	s.Budget -= opt.TotalCost()
	s.TimeRemaining -= opt.Time

	s.Quality = clamp(s.Quality+opt.Quality, project.IndicatorMin, project.IndicatorMax)
	s.Safety = clamp(s.Safety+opt.Safety, project.IndicatorMin, project.IndicatorMax)
	s.ClientSatisfaction = clamp(s.ClientSatisfaction+opt.Client, project.IndicatorMin, project.IndicatorMax)
	s.Morale = clamp(s.Morale+opt.Morale, project.MoraleMin, project.MoraleMax)

	// Attrition happens regardless of the decision
	s.Morale = math.Max(project.MoraleMin, s.Morale-MonthlyMoraleErosion)
	s.Quality = math.Max(project.IndicatorMin, s.Quality-MonthlyQualityErosion)
}

// RunMonthlyCycle burns the monthly budget, advances or delays the current
// phase, resolves risk events and moves to the next month
func (e *Engine) RunMonthlyCycle(s *project.State) CycleReport {
	report := CycleReport{Month: s.Month}

	if s.IsComplete() {
		report.Outcome = OutcomeSkipped
		return report
	}

	if s.IsBankrupt() {
		s.Log.Append("GAME OVER: the budget is deeply negative and the project has been forcibly halted.")
		s.Halted = true
		report.Outcome = OutcomeHalted
		return report
	}

	s.Log.Appendf("--- Phase %d: %s ---", s.Month, s.CurrentPhase())

	s.Budget -= s.Targets.BaseMonthlyCost

	if PhaseCompletes(s.Morale) {
		s.ScopeProgress++
		s.TimeRemaining--
		s.Log.Appendf("   [Monthly report]: phase '%s' completed on schedule.", project.PhaseName(s.ScopeProgress-1))
		report.Outcome = OutcomeAdvanced
	} else {
		s.TimeRemaining--
		s.Log.Appendf("   [Monthly report]: WARNING delay in phase '%s'. (morale effect)", s.CurrentPhase())
		report.Outcome = OutcomeDelayed
	}

	e.resolveRiskEvents(s, &report)

	s.Month++
	return report
}

// TimeImpact returns the schedule slowdown factor for a morale level
func TimeImpact(morale float64) float64 {
	productivity := 1 + (morale-MoraleBaseline)/100
	return 1 / productivity
}

// PhaseCompletes reports whether morale is high enough for this month's
// phase to finish
func PhaseCompletes(morale float64) bool {
	return TimeImpact(morale) <= MaxTimeImpact
}

// resolveRiskEvents evaluates every eligible event with its own draw, in
// catalog order. Any number of events may fire in one month.
func (e *Engine) resolveRiskEvents(s *project.State, report *CycleReport) {
	for _, event := range e.risks.EligibleIn(s.Month) {
		if e.rng.Float64() >= event.Probability() {
			continue
		}

		report.Triggered = append(report.Triggered, event.Code())
		s.Log.Appendf("RISK EVENT TRIGGERED: %s", event.Name())

		impacts := event.Impacts()
		if impacts.Cost != nil {
			s.Budget -= *impacts.Cost
			s.CostOfRisk += *impacts.Cost
			report.RiskCost += *impacts.Cost
			s.Log.Appendf("   [Cost]: -%.1f billion Toman", project.Billions(*impacts.Cost))
		}
		if impacts.Time != nil {
			s.TimeRemaining -= *impacts.Time
			report.RiskDelay += *impacts.Time
			s.Log.Appendf("   [Time]: +%.1f weeks delay", *impacts.Time*WeeksPerMonth)
		}
		if impacts.Safety != nil {
			s.Safety = math.Max(project.RiskSafetyFloor, s.Safety+*impacts.Safety)
		}
		if impacts.Morale != nil {
			s.Morale = math.Max(project.MoraleMin, s.Morale+*impacts.Morale)
		}
	}

	if len(report.Triggered) == 0 {
		s.Log.Append("   [Risk]: no significant random event this month.")
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
