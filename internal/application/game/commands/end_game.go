package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/adapters/metrics"
	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
)

// EndGameCommand removes a session from the store once its player is done
// with it. The session does not have to be finished.
type EndGameCommand struct {
	SessionID string
}

// EndGameResponse confirms the removal
type EndGameResponse struct {
	SessionID string
	Decisions int
	WasOver   bool
}

// EndGameHandler handles the EndGame command
type EndGameHandler struct {
	sessionRepo game.SessionRepository
	locks       *common.KeyedLock
}

// NewEndGameHandler creates a new EndGameHandler
func NewEndGameHandler(sessionRepo game.SessionRepository, locks *common.KeyedLock) *EndGameHandler {
	if locks == nil {
		locks = common.NewKeyedLock()
	}

	return &EndGameHandler{
		sessionRepo: sessionRepo,
		locks:       locks,
	}
}

// Handle executes the EndGame command
func (h *EndGameHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EndGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EndGameCommand")
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

	if err := h.sessionRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	metrics.ForgetSession(id.String())

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Game ended", map[string]interface{}{
		"session_id": id.String(),
		"decisions":  session.Decisions(),
		"over":       session.IsOver(),
	})

	return &EndGameResponse{
		SessionID: id.String(),
		Decisions: session.Decisions(),
		WasOver:   session.IsOver(),
	}, nil
}
