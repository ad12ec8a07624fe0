package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/construction-sim/internal/adapters/persistence"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
	"github.com/andrescamacho/construction-sim/test/helpers"
)

type sessionStoreContext struct {
	repo    *persistence.GormSessionRepository
	id      game.SessionID
	seed    int64
	keys    []decision.Key
	loadErr error
}

func (ss *sessionStoreContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	ss.repo = persistence.NewGormSessionRepository(helpers.SharedTestDB, shared.NewMockClock(helpers.FixedStart))
	ss.id = game.SessionID{}
	ss.seed = 0
	ss.keys = nil
	ss.loadErr = nil
	return nil
}

func (ss *sessionStoreContext) aStoredGameWithSeed(ctx context.Context, seed int64) error {
	s, err := game.NewSession(project.DefaultTargets(), seed, shared.NewMockClock(helpers.FixedStart))
	if err != nil {
		return err
	}
	ss.id = s.ID()
	ss.seed = seed
	return ss.repo.Save(ctx, s)
}

// iPlayOptionsInTheStoredGame reloads the session before every decision
func (ss *sessionStoreContext) iPlayOptionsInTheStoredGame(ctx context.Context, options string) error {
	catalog := decision.NewCatalog()
	for _, k := range strings.Split(options, ",") {
		key := decision.Key(strings.TrimSpace(k))
		s, err := ss.repo.FindByID(ctx, ss.id)
		if err != nil {
			return err
		}
		if s.IsOver() {
			break
		}
		if _, err := s.Decide(simulation.NewEngine(nil, s.Random()), catalog, key); err != nil {
			return err
		}
		if err := ss.repo.Save(ctx, s); err != nil {
			return err
		}
		ss.keys = append(ss.keys, key)
	}
	return nil
}

func (ss *sessionStoreContext) theStoredGameShouldMatchAnInMemoryGame(ctx context.Context, seed int64) error {
	reference, err := game.NewSession(project.DefaultTargets(), seed, shared.NewMockClock(helpers.FixedStart))
	if err != nil {
		return err
	}
	engine := simulation.NewEngine(nil, reference.Random())
	catalog := decision.NewCatalog()
	for _, key := range ss.keys {
		if _, err := reference.Decide(engine, catalog, key); err != nil {
			return err
		}
	}

	stored, err := ss.repo.FindByID(ctx, ss.id)
	if err != nil {
		return err
	}
	if stored.Draws() != reference.Draws() {
		return fmt.Errorf("expected %d draws, got %d", reference.Draws(), stored.Draws())
	}
	if !reflect.DeepEqual(stored.Snapshot(), reference.Snapshot()) {
		return fmt.Errorf("stored snapshot diverged:\n got  %+v\n want %+v", stored.Snapshot(), reference.Snapshot())
	}
	return nil
}

func (ss *sessionStoreContext) iDeleteTheStoredGame(ctx context.Context) error {
	return ss.repo.Delete(ctx, ss.id)
}

func (ss *sessionStoreContext) loadingTheStoredGameShouldFailWithSessionNotFound(ctx context.Context) error {
	_, err := ss.repo.FindByID(ctx, ss.id)
	var notFound *game.ErrSessionNotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("expected session not found, got %v", err)
	}
	return nil
}

// InitializeSessionStoreScenario registers steps backed by the shared test database
func InitializeSessionStoreScenario(ctx *godog.ScenarioContext) {
	ss := &sessionStoreContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, ss.reset()
	})

	ctx.Step(`^a stored game with seed (\d+)$`, ss.aStoredGameWithSeed)
	ctx.Step(`^I play options "([^"]*)" in the stored game$`, ss.iPlayOptionsInTheStoredGame)
	ctx.Step(`^the stored game should match an in-memory game with seed (\d+) given the same options$`, ss.theStoredGameShouldMatchAnInMemoryGame)
	ctx.Step(`^I delete the stored game$`, ss.iDeleteTheStoredGame)
	ctx.Step(`^loading the stored game should fail with session not found$`, ss.loadingTheStoredGameShouldFailWithSessionNotFound)
}
