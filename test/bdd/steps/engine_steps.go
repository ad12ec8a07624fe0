package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

const tolerance = 1e-9

type engineContext struct {
	state   *project.State
	risks   *risk.Catalog
	rng     shared.RandomSource
	report  simulation.CycleReport
	catalog *decision.Catalog
}

func (ec *engineContext) reset() {
	ec.state = nil
	ec.risks = risk.DefaultCatalog()
	ec.rng = shared.NewSequenceRandom()
	ec.report = simulation.CycleReport{}
	ec.catalog = decision.NewCatalog()
}

func (ec *engineContext) engine() *simulation.Engine {
	return simulation.NewEngine(ec.risks, ec.rng)
}

// Given steps

func (ec *engineContext) aFreshProject() error {
	ec.state = project.NewState(project.DefaultTargets())
	ec.state.Log.Append(project.StartEntry(ec.state.Targets))
	return nil
}

func (ec *engineContext) noRiskEventFires() error {
	ec.rng = shared.ConstantRandom(0.999999)
	return nil
}

func (ec *engineContext) everyRiskDrawIs(v float64) error {
	ec.rng = shared.ConstantRandom(v)
	return nil
}

func (ec *engineContext) onlyRiskEventIsInTheCatalog(code string) error {
	event, err := risk.DefaultCatalog().Find(code)
	if err != nil {
		return err
	}
	ec.risks, err = risk.NewCatalog(event)
	return err
}

func (ec *engineContext) theProjectIsInMonth(month int) error {
	ec.state.Month = month
	return nil
}

func (ec *engineContext) moraleIs(v float64) error {
	ec.state.Morale = v
	return nil
}

func (ec *engineContext) scopeProgressIs(v int) error {
	ec.state.ScopeProgress = v
	return nil
}

func (ec *engineContext) theBudgetIs(billions float64) error {
	ec.state.Budget = int64(math.Round(billions * 1e9))
	return nil
}

// When steps

func (ec *engineContext) iApplyOptionOfScenario(key, scenario string) error {
	s, err := decision.ParseScenario(scenario)
	if err != nil {
		return err
	}
	menu, err := ec.catalog.MenuFor(ec.state.Month, s)
	if err != nil {
		return err
	}
	opt, ok := menu.Lookup(decision.Key(key))
	if !ok {
		return fmt.Errorf("scenario %s has no option %q", scenario, key)
	}
	ec.engine().ApplyDecision(ec.state, opt)
	return nil
}

func (ec *engineContext) iApplyAnOptionWith(quality, safety, client, morale int) error {
	ec.engine().ApplyDecision(ec.state, decision.Option{
		Description: "extreme",
		Quality:     float64(quality),
		Safety:      float64(safety),
		Client:      float64(client),
		Morale:      float64(morale),
	})
	return nil
}

func (ec *engineContext) theMonthlyCycleRuns() error {
	ec.report = ec.engine().RunMonthlyCycle(ec.state)
	return nil
}

// Then steps

func (ec *engineContext) indicatorShouldBe(name string, expected float64) error {
	var actual float64
	switch name {
	case "quality":
		actual = ec.state.Quality
	case "safety":
		actual = ec.state.Safety
	case "client satisfaction":
		actual = ec.state.ClientSatisfaction
	case "morale":
		actual = ec.state.Morale
	case "time remaining":
		actual = ec.state.TimeRemaining
	default:
		return fmt.Errorf("unknown indicator %q", name)
	}
	if math.Abs(actual-expected) > tolerance {
		return fmt.Errorf("expected %s %v, got %v", name, expected, actual)
	}
	return nil
}

func (ec *engineContext) theBudgetShouldBe(billions float64) error {
	expected := int64(math.Round(billions * 1e9))
	if ec.state.Budget != expected {
		return fmt.Errorf("expected budget %d, got %d", expected, ec.state.Budget)
	}
	return nil
}

func (ec *engineContext) scopeProgressShouldBe(expected int) error {
	if ec.state.ScopeProgress != expected {
		return fmt.Errorf("expected scope progress %d, got %d", expected, ec.state.ScopeProgress)
	}
	return nil
}

func (ec *engineContext) theProjectShouldBeInMonth(expected int) error {
	if ec.state.Month != expected {
		return fmt.Errorf("expected month %d, got %d", expected, ec.state.Month)
	}
	return nil
}

func (ec *engineContext) theCycleOutcomeShouldBe(expected string) error {
	if string(ec.report.Outcome) != expected {
		return fmt.Errorf("expected outcome %s, got %s", expected, ec.report.Outcome)
	}
	return nil
}

func (ec *engineContext) riskEventShouldHaveTriggered(code, not string) error {
	triggered := false
	for _, c := range ec.report.Triggered {
		if c == code {
			triggered = true
		}
	}
	if not == "" && !triggered {
		return fmt.Errorf("expected %s to trigger, triggered: %v", code, ec.report.Triggered)
	}
	if not != "" && triggered {
		return fmt.Errorf("expected %s not to trigger", code)
	}
	return nil
}

func (ec *engineContext) theProjectShouldBeTerminal() error {
	if !ec.state.IsTerminal() {
		return fmt.Errorf("expected the project to be terminal")
	}
	return nil
}

func (ec *engineContext) theLogShouldEndWith(expected string) error {
	if last := ec.state.Log.Last(); last != expected {
		return fmt.Errorf("expected last log entry %q, got %q", expected, last)
	}
	return nil
}

func (ec *engineContext) theLogShouldContain(fragment string) error {
	for _, entry := range ec.state.Log.Entries() {
		if strings.Contains(entry, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no log entry contains %q", fragment)
}

// InitializeEngineScenario registers decision and monthly cycle steps
func InitializeEngineScenario(ctx *godog.ScenarioContext) {
	ec := &engineContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ec.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a fresh project$`, ec.aFreshProject)
	ctx.Step(`^no risk event fires$`, ec.noRiskEventFires)
	ctx.Step(`^every risk draw is ([0-9.]+)$`, ec.everyRiskDrawIs)
	ctx.Step(`^only risk event "([^"]*)" is in the catalog$`, ec.onlyRiskEventIsInTheCatalog)
	ctx.Step(`^the project is in month (\d+)$`, ec.theProjectIsInMonth)
	ctx.Step(`^morale is ([0-9.]+)$`, ec.moraleIs)
	ctx.Step(`^scope progress is (\d+)$`, ec.scopeProgressIs)
	ctx.Step(`^the budget is (-?[0-9.]+) billion$`, ec.theBudgetIs)

	// When steps
	ctx.Step(`^I apply option "([a-z])" of scenario "([A-Z_]+)"$`, ec.iApplyOptionOfScenario)
	ctx.Step(`^I apply an option with quality (-?\d+), safety (-?\d+), client (-?\d+) and morale (-?\d+)$`, ec.iApplyAnOptionWith)
	ctx.Step(`^the monthly cycle runs$`, ec.theMonthlyCycleRuns)

	// Then steps
	ctx.Step(`^(quality|safety|client satisfaction|morale|time remaining) should be (-?[0-9.]+)$`, ec.indicatorShouldBe)
	ctx.Step(`^the budget should be (-?[0-9.]+) billion$`, ec.theBudgetShouldBe)
	ctx.Step(`^scope progress should be (\d+)$`, ec.scopeProgressShouldBe)
	ctx.Step(`^the project should be in month (\d+)$`, ec.theProjectShouldBeInMonth)
	ctx.Step(`^the cycle outcome should be "([A-Z]+)"$`, ec.theCycleOutcomeShouldBe)
	ctx.Step(`^risk event "([^"]*)" should (not )?have triggered$`, func(code, not string) error {
		return ec.riskEventShouldHaveTriggered(code, not)
	})
	ctx.Step(`^the project should be terminal$`, ec.theProjectShouldBeTerminal)
	ctx.Step(`^the log should end with "([^"]*)"$`, ec.theLogShouldEndWith)
	ctx.Step(`^the log should contain "([^"]*)"$`, ec.theLogShouldContain)
}
