package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
)

// GetFinalScoreQuery requests the KPI breakdown of a session
type GetFinalScoreQuery struct {
	SessionID string
}

// GetFinalScoreResponse carries the score. Final is false while the run is
// still in progress, in which case the score is provisional.
type GetFinalScoreResponse struct {
	SessionID string
	Final     bool
	Ending    project.Ending
	Score     scoring.Score
	Log       []string
}

// GetFinalScoreHandler handles the GetFinalScore query
type GetFinalScoreHandler struct {
	sessionRepo game.SessionRepository
}

// NewGetFinalScoreHandler creates a new GetFinalScoreHandler
func NewGetFinalScoreHandler(sessionRepo game.SessionRepository) *GetFinalScoreHandler {
	return &GetFinalScoreHandler{sessionRepo: sessionRepo}
}

// Handle executes the GetFinalScore query
func (h *GetFinalScoreHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetFinalScoreQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetFinalScoreQuery")
	}

	session, err := loadSession(ctx, h.sessionRepo, query.SessionID)
	if err != nil {
		return nil, err
	}

	snapshot := session.Snapshot()
	return &GetFinalScoreResponse{
		SessionID: session.ID().String(),
		Final:     session.IsOver(),
		Ending:    snapshot.Ending,
		Score:     scoring.ComputeSnapshot(snapshot),
		Log:       snapshot.Log,
	}, nil
}
