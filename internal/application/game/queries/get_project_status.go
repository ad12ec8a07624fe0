package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
)

// GetProjectStatusQuery requests a read-only view of a session
type GetProjectStatusQuery struct {
	SessionID string
}

// GetProjectStatusResponse is everything a renderer needs
type GetProjectStatusResponse struct {
	SessionID string
	Seed      int64
	Decisions int
	GameOver  bool
	Snapshot  project.Snapshot
	UpdatedAt time.Time
}

// GetProjectStatusHandler handles the GetProjectStatus query
type GetProjectStatusHandler struct {
	sessionRepo game.SessionRepository
}

// NewGetProjectStatusHandler creates a new GetProjectStatusHandler
func NewGetProjectStatusHandler(sessionRepo game.SessionRepository) *GetProjectStatusHandler {
	return &GetProjectStatusHandler{sessionRepo: sessionRepo}
}

// Handle executes the GetProjectStatus query
func (h *GetProjectStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetProjectStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProjectStatusQuery")
	}

	session, err := loadSession(ctx, h.sessionRepo, query.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetProjectStatusResponse{
		SessionID: session.ID().String(),
		Seed:      session.Seed(),
		Decisions: session.Decisions(),
		GameOver:  session.IsOver(),
		Snapshot:  session.Snapshot(),
		UpdatedAt: session.UpdatedAt(),
	}, nil
}

func loadSession(ctx context.Context, repo game.SessionRepository, rawID string) (*game.Session, error) {
	id, err := game.NewSessionIDFromString(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	session, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}
