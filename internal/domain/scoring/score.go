package scoring

import (
	"math"

	"github.com/andrescamacho/construction-sim/internal/domain/project"
)

// KPI weights
const (
	TimeWeight    = 0.3
	CostWeight    = 0.3
	QualityWeight = 0.2
	SafetyWeight  = 0.1
	ClientWeight  = 0.1

	// CostOverrunPenalty scales how hard budget overrun is punished
	CostOverrunPenalty = 0.5
)

// Score is the final evaluation of a finished run
type Score struct {
	FinalTime int   // months used
	FinalCost int64 // budget consumed

	TimeScore float64
	CostScore float64
	Quality   float64
	Safety    float64
	Client    float64

	KPI float64
}

// Compute scores a terminal state. It is pure and deterministic.
func Compute(s *project.State) Score {
	return ComputeSnapshot(s.Snapshot())
}

// ComputeSnapshot scores a state snapshot
func ComputeSnapshot(s project.Snapshot) Score {
	t := s.Targets

	finalTime := s.Month - 1
	finalCost := t.BudgetTarget - s.Budget

	timeOverrun := math.Max(0, float64(finalTime)-t.TimeTarget)
	timeScore := math.Max(0, 100*(1-timeOverrun/t.TimeTarget))

	costOverrun := math.Max(0, float64(finalCost-t.BudgetTarget))
	costScore := math.Max(0, 100*(1-costOverrun/float64(t.BudgetTarget)*CostOverrunPenalty))

	kpi := timeScore*TimeWeight +
		costScore*CostWeight +
		s.Quality*QualityWeight +
		s.Safety*SafetyWeight +
		s.ClientSatisfaction*ClientWeight

	return Score{
		FinalTime: finalTime,
		FinalCost: finalCost,
		TimeScore: timeScore,
		CostScore: costScore,
		Quality:   s.Quality,
		Safety:    s.Safety,
		Client:    s.ClientSatisfaction,
		KPI:       kpi,
	}
}
