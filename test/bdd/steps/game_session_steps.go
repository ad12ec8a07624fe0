package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/game/commands"
	"github.com/andrescamacho/construction-sim/internal/application/game/queries"
	"github.com/andrescamacho/construction-sim/internal/application/setup"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/test/helpers"
)

type gameSessionContext struct {
	repo      *helpers.MockSessionRepository
	mediator  common.Mediator
	sessionID string

	lastDecision *commands.MakeDecisionResponse
	lastErr      error
	menus        []*decision.Menu
}

func (gc *gameSessionContext) reset() error {
	gc.repo = helpers.NewMockSessionRepository()
	registry := setup.NewHandlerRegistry(gc.repo, project.DefaultTargets(), nil, shared.NewMockClock(helpers.FixedStart))
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}
	gc.mediator = med
	gc.sessionID = ""
	gc.lastDecision = nil
	gc.lastErr = nil
	gc.menus = nil
	return nil
}

func (gc *gameSessionContext) session(ctx context.Context) (*game.Session, error) {
	id, err := game.NewSessionIDFromString(gc.sessionID)
	if err != nil {
		return nil, err
	}
	return gc.repo.FindByID(ctx, id)
}

func (gc *gameSessionContext) status(ctx context.Context) (*queries.GetProjectStatusResponse, error) {
	resp, err := gc.mediator.Send(ctx, &queries.GetProjectStatusQuery{SessionID: gc.sessionID})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.GetProjectStatusResponse), nil
}

// Given steps

func (gc *gameSessionContext) aNewGameWithSeed(ctx context.Context, seed int64) error {
	resp, err := gc.mediator.Send(ctx, &commands.StartGameCommand{Seed: &seed})
	if err != nil {
		return err
	}
	gc.sessionID = resp.(*commands.StartGameResponse).SessionID
	return nil
}

func (gc *gameSessionContext) aScriptedGameInMonthWhoseNextDrawIs(month int, draw float64) error {
	s, err := game.NewSessionWithRandom(project.DefaultTargets(), 0, shared.NewSequenceRandom(draw), shared.NewMockClock(helpers.FixedStart))
	if err != nil {
		return err
	}
	s.State().Month = month
	gc.repo.AddSession(s)
	gc.sessionID = s.ID().String()
	return nil
}

func (gc *gameSessionContext) theGameBudgetHasFallenTo(ctx context.Context, billions float64) error {
	s, err := gc.session(ctx)
	if err != nil {
		return err
	}
	s.State().Budget = int64(math.Round(billions * 1e9))
	return gc.repo.Save(ctx, s)
}

// When steps

func (gc *gameSessionContext) iChooseOption(ctx context.Context, key string) error {
	resp, err := gc.mediator.Send(ctx, &commands.MakeDecisionCommand{SessionID: gc.sessionID, Key: key})
	gc.lastErr = err
	if err == nil {
		gc.lastDecision = resp.(*commands.MakeDecisionResponse)
	}
	return nil
}

func (gc *gameSessionContext) iRestartTheGame(ctx context.Context) error {
	_, err := gc.mediator.Send(ctx, &commands.RestartGameCommand{SessionID: gc.sessionID})
	return err
}

func (gc *gameSessionContext) iRequestTheDecisionOptionsTimes(ctx context.Context, times int) error {
	for i := 0; i < times; i++ {
		resp, err := gc.mediator.Send(ctx, &queries.GetDecisionOptionsQuery{SessionID: gc.sessionID})
		if err != nil {
			return err
		}
		gc.menus = append(gc.menus, resp.(*queries.GetDecisionOptionsResponse).Menu)
	}
	return nil
}

// Then steps

func (gc *gameSessionContext) theGameShouldBeInMonth(ctx context.Context, expected int) error {
	st, err := gc.status(ctx)
	if err != nil {
		return err
	}
	if st.Snapshot.Month != expected {
		return fmt.Errorf("expected month %d, got %d", expected, st.Snapshot.Month)
	}
	return nil
}

func (gc *gameSessionContext) theDecisionCountShouldBe(ctx context.Context, expected int) error {
	st, err := gc.status(ctx)
	if err != nil {
		return err
	}
	if st.Decisions != expected {
		return fmt.Errorf("expected %d decisions, got %d", expected, st.Decisions)
	}
	return nil
}

func (gc *gameSessionContext) theDecisionShouldBeRejectedAsInvalid() error {
	if gc.lastErr != nil {
		return fmt.Errorf("expected a soft rejection, got error: %v", gc.lastErr)
	}
	if gc.lastDecision == nil || !gc.lastDecision.InvalidKey {
		return fmt.Errorf("expected the decision to be rejected as invalid")
	}
	return nil
}

func (gc *gameSessionContext) theLastLogEntryShouldBe(ctx context.Context, expected string) error {
	st, err := gc.status(ctx)
	if err != nil {
		return err
	}
	log := st.Snapshot.Log
	if len(log) == 0 || log[len(log)-1] != expected {
		return fmt.Errorf("expected last log entry %q, got %v", expected, log)
	}
	return nil
}

func (gc *gameSessionContext) everyPresentedMenuShouldBe(expected string) error {
	if len(gc.menus) == 0 {
		return fmt.Errorf("no menus were presented")
	}
	for i, m := range gc.menus {
		if string(m.Scenario) != expected {
			return fmt.Errorf("menu %d: expected %s, got %s", i+1, expected, m.Scenario)
		}
	}
	return nil
}

func (gc *gameSessionContext) theProjectLogShouldOnlyContainTheStartEntry(ctx context.Context) error {
	st, err := gc.status(ctx)
	if err != nil {
		return err
	}
	want := project.StartEntry(project.DefaultTargets())
	if len(st.Snapshot.Log) != 1 || st.Snapshot.Log[0] != want {
		return fmt.Errorf("expected only %q, got %v", want, st.Snapshot.Log)
	}
	return nil
}

func (gc *gameSessionContext) theDecisionShouldFailBecauseTheGameIsOver() error {
	var overErr *game.GameOverError
	if !errors.As(gc.lastErr, &overErr) {
		return fmt.Errorf("expected a game over error, got %v", gc.lastErr)
	}
	return nil
}

// InitializeGameSessionScenario registers steps that drive sessions through the mediator
func InitializeGameSessionScenario(ctx *godog.ScenarioContext) {
	gc := &gameSessionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, gc.reset()
	})

	// Given steps
	ctx.Step(`^a new game with seed (\d+)$`, gc.aNewGameWithSeed)
	ctx.Step(`^a scripted game in month (\d+) whose next draw is ([0-9.]+)$`, gc.aScriptedGameInMonthWhoseNextDrawIs)
	ctx.Step(`^the game budget has fallen to (-?[0-9.]+) billion$`, gc.theGameBudgetHasFallenTo)

	// When steps
	ctx.Step(`^I choose option "([^"]*)"$`, gc.iChooseOption)
	ctx.Step(`^I restart the game$`, gc.iRestartTheGame)
	ctx.Step(`^I request the decision options (\d+) times$`, gc.iRequestTheDecisionOptionsTimes)

	// Then steps
	ctx.Step(`^the game should be in month (\d+)$`, gc.theGameShouldBeInMonth)
	ctx.Step(`^the decision count should be (\d+)$`, gc.theDecisionCountShouldBe)
	ctx.Step(`^the decision should be rejected as invalid$`, gc.theDecisionShouldBeRejectedAsInvalid)
	ctx.Step(`^the last log entry should be "([^"]*)"$`, gc.theLastLogEntryShouldBe)
	ctx.Step(`^every presented menu should be "([A-Z_]+)"$`, gc.everyPresentedMenuShouldBe)
	ctx.Step(`^the project log should only contain the start entry$`, gc.theProjectLogShouldOnlyContainTheStartEntry)
	ctx.Step(`^the decision should fail because the game is over$`, gc.theDecisionShouldFailBecauseTheGameIsOver)
}
