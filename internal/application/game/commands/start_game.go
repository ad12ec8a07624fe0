package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/adapters/metrics"
	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// StartGameCommand creates a new session
type StartGameCommand struct {
	Seed    *int64           // Optional: derived from the clock when nil
	Targets *project.Targets // Optional: handler defaults when nil
}

// StartGameResponse describes the new session
type StartGameResponse struct {
	SessionID string
	Seed      int64
	Snapshot  project.Snapshot
}

// StartGameHandler handles the StartGame command
type StartGameHandler struct {
	sessionRepo game.SessionRepository
	targets     project.Targets
	clock       shared.Clock
}

// NewStartGameHandler creates a new StartGameHandler
func NewStartGameHandler(
	sessionRepo game.SessionRepository,
	targets project.Targets,
	clock shared.Clock,
) *StartGameHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &StartGameHandler{
		sessionRepo: sessionRepo,
		targets:     targets,
		clock:       clock,
	}
}

// Handle executes the StartGame command
func (h *StartGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartGameCommand")
	}

	targets := h.targets
	if cmd.Targets != nil {
		targets = *cmd.Targets
	}
	seed := resolveSeed(cmd.Seed, h.clock)

	session, err := game.NewSession(targets, seed, h.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err := h.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	metrics.RecordGameStarted(session.ID().String())

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Game started", map[string]interface{}{
		"session_id": session.ID().String(),
		"seed":       seed,
		"budget":     targets.BudgetTarget,
		"months":     targets.TimeTarget,
	})

	return &StartGameResponse{
		SessionID: session.ID().String(),
		Seed:      seed,
		Snapshot:  session.Snapshot(),
	}, nil
}

func resolveSeed(seed *int64, clock shared.Clock) int64 {
	if seed != nil {
		return *seed
	}
	return clock.Now().UnixNano()
}
