package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
)

type scoringContext struct {
	snapshot project.Snapshot
	score    scoring.Score
}

func (sc *scoringContext) reset() {
	sc.snapshot = project.Snapshot{}
	sc.score = scoring.Score{}
}

func (sc *scoringContext) aFinishedProjectWith(months int, costBillions, quality, safety, client float64) error {
	targets := project.DefaultTargets()
	sc.snapshot = project.Snapshot{
		Targets:            targets,
		Month:              months + 1,
		Budget:             targets.BudgetTarget - int64(math.Round(costBillions*1e9)),
		Quality:            quality,
		Safety:             safety,
		ClientSatisfaction: client,
	}
	return nil
}

func (sc *scoringContext) theFinalScoreIsComputed() error {
	sc.score = scoring.ComputeSnapshot(sc.snapshot)
	return nil
}

func (sc *scoringContext) scoreShouldBe(name string, expected float64) error {
	var actual float64
	switch name {
	case "time score":
		actual = sc.score.TimeScore
	case "cost score":
		actual = sc.score.CostScore
	case "KPI":
		actual = sc.score.KPI
	default:
		return fmt.Errorf("unknown score %q", name)
	}
	if math.Abs(actual-expected) > 1e-6 {
		return fmt.Errorf("expected %s %v, got %v", name, expected, actual)
	}
	return nil
}

// InitializeScoringScenario registers final score steps
func InitializeScoringScenario(ctx *godog.ScenarioContext) {
	sc := &scoringContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	ctx.Step(`^a finished project with final time (\d+) months, final cost ([0-9.]+) billion, quality ([0-9.]+), safety ([0-9.]+) and client ([0-9.]+)$`, sc.aFinishedProjectWith)
	ctx.Step(`^the final score is computed$`, sc.theFinalScoreIsComputed)
	ctx.Step(`^the (time score|cost score|KPI) should be ([0-9.]+)$`, sc.scoreShouldBe)
}
