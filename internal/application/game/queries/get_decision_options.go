package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
)

// GetDecisionOptionsQuery requests the menu for the session's current month
type GetDecisionOptionsQuery struct {
	SessionID string
}

// GetDecisionOptionsResponse carries the menu on offer
type GetDecisionOptionsResponse struct {
	SessionID string
	Menu      *decision.Menu
}

// GetDecisionOptionsHandler handles the GetDecisionOptions query.
//
// The first request of a month draws the scenario and caches it on the
// session, so this handler persists and takes the session lock even though
// it is a query. Repeated requests return the same menu.
type GetDecisionOptionsHandler struct {
	sessionRepo game.SessionRepository
	decisions   *decision.Catalog
	locks       *common.KeyedLock
}

// NewGetDecisionOptionsHandler creates a new GetDecisionOptionsHandler
func NewGetDecisionOptionsHandler(
	sessionRepo game.SessionRepository,
	decisions *decision.Catalog,
	locks *common.KeyedLock,
) *GetDecisionOptionsHandler {
	if decisions == nil {
		decisions = decision.NewCatalog()
	}
	if locks == nil {
		locks = common.NewKeyedLock()
	}

	return &GetDecisionOptionsHandler{
		sessionRepo: sessionRepo,
		decisions:   decisions,
		locks:       locks,
	}
}

// Handle executes the GetDecisionOptions query
func (h *GetDecisionOptionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetDecisionOptionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetDecisionOptionsQuery")
	}

	id, err := game.NewSessionIDFromString(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	unlock := h.locks.Lock(id.String())
	defer unlock()

	session, err := h.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.IsOver() {
		return nil, &game.GameOverError{SessionID: id.String(), Month: session.State().Month}
	}

	cached := session.Pending()
	menu, err := session.Offer(h.decisions)
	if err != nil {
		return nil, fmt.Errorf("failed to build decision menu: %w", err)
	}

	if cached == nil || cached.Month != menu.Month {
		if err := h.sessionRepo.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}

	return &GetDecisionOptionsResponse{
		SessionID: id.String(),
		Menu:      menu,
	}, nil
}
