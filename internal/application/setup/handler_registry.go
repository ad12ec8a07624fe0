package setup

import (
	"reflect"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	gameCommands "github.com/andrescamacho/construction-sim/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/construction-sim/internal/application/game/queries"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	sessionRepo game.SessionRepository
	targets     project.Targets
	risks       *risk.Catalog
	decisions   *decision.Catalog
	locks       *common.KeyedLock
	clock       shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// A nil risk catalog uses the built-in table.
func NewHandlerRegistry(
	sessionRepo game.SessionRepository,
	targets project.Targets,
	risks *risk.Catalog,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if risks == nil {
		risks = risk.DefaultCatalog()
	}

	return &HandlerRegistry{
		sessionRepo: sessionRepo,
		targets:     targets,
		risks:       risks,
		decisions:   decision.NewCatalog(),
		locks:       common.NewKeyedLock(),
		clock:       clock,
	}
}

// Risks returns the risk catalog the handlers run with
func (r *HandlerRegistry) Risks() *risk.Catalog {
	return r.risks
}

// Decisions returns the decision catalog the handlers run with
func (r *HandlerRegistry) Decisions() *decision.Catalog {
	return r.decisions
}

// RegisterGameHandlers registers all game command and query handlers with the mediator
//
// This method registers:
//   - StartGameCommand → StartGameHandler
//   - MakeDecisionCommand → MakeDecisionHandler
//   - RestartGameCommand → RestartGameHandler
//   - EndGameCommand → EndGameHandler
//   - GetProjectStatusQuery → GetProjectStatusHandler
//   - GetDecisionOptionsQuery → GetDecisionOptionsHandler
//   - GetFinalScoreQuery → GetFinalScoreHandler
//
// Every handler that mutates a session shares one KeyedLock, so requests
// against the same session are serialised.
func (r *HandlerRegistry) RegisterGameHandlers(m common.Mediator) error {
	handlers := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&gameCommands.StartGameCommand{}, gameCommands.NewStartGameHandler(r.sessionRepo, r.targets, r.clock)},
		{&gameCommands.MakeDecisionCommand{}, gameCommands.NewMakeDecisionHandler(r.sessionRepo, r.risks, r.decisions, r.locks)},
		{&gameCommands.RestartGameCommand{}, gameCommands.NewRestartGameHandler(r.sessionRepo, r.locks, r.clock)},
		{&gameCommands.EndGameCommand{}, gameCommands.NewEndGameHandler(r.sessionRepo, r.locks)},
		{&gameQueries.GetProjectStatusQuery{}, gameQueries.NewGetProjectStatusHandler(r.sessionRepo)},
		{&gameQueries.GetDecisionOptionsQuery{}, gameQueries.NewGetDecisionOptionsHandler(r.sessionRepo, r.decisions, r.locks)},
		{&gameQueries.GetFinalScoreQuery{}, gameQueries.NewGetFinalScoreHandler(r.sessionRepo)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}

	return nil
}

// CreateConfiguredMediator creates a new mediator with the given middlewares
// and all game handlers registered
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...common.Middleware) (common.Mediator, error) {
	m := common.NewMediator()

	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterGameHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
