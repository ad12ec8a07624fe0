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

// RestartGameCommand discards a session's run and starts over
type RestartGameCommand struct {
	SessionID string
	Seed      *int64 // Optional: derived from the clock when nil
}

// RestartGameResponse describes the fresh run
type RestartGameResponse struct {
	SessionID string
	Seed      int64
	Snapshot  project.Snapshot
}

// RestartGameHandler handles the RestartGame command
type RestartGameHandler struct {
	sessionRepo game.SessionRepository
	locks       *common.KeyedLock
	clock       shared.Clock
}

// NewRestartGameHandler creates a new RestartGameHandler
func NewRestartGameHandler(
	sessionRepo game.SessionRepository,
	locks *common.KeyedLock,
	clock shared.Clock,
) *RestartGameHandler {
	if locks == nil {
		locks = common.NewKeyedLock()
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &RestartGameHandler{
		sessionRepo: sessionRepo,
		locks:       locks,
		clock:       clock,
	}
}

// Handle executes the RestartGame command
func (h *RestartGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RestartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RestartGameCommand")
	}

	id, err := game.NewSessionIDFromString(cmd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	unlock := h.locks.Lock(id.String())
	defer unlock()

	session, err := h.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	seed := resolveSeed(cmd.Seed, h.clock)
	session.Restart(seed)

	if err := h.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	metrics.RecordGameStarted(id.String())

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Game restarted", map[string]interface{}{
		"session_id": id.String(),
		"seed":       seed,
	})

	return &RestartGameResponse{
		SessionID: id.String(),
		Seed:      seed,
		Snapshot:  session.Snapshot(),
	}, nil
}
