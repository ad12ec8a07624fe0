package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/adapters/metrics"
	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

// MakeDecisionCommand submits the option key chosen for the current month
type MakeDecisionCommand struct {
	SessionID string
	Key       string
}

// MakeDecisionResponse describes what the decision did.
//
// An unknown key is not an error: InvalidKey is set, the rejection is in
// NewEntries and every other value is unchanged.
type MakeDecisionResponse struct {
	SessionID  string
	Month      int
	InvalidKey bool
	Scenario   decision.Scenario
	Option     decision.Option
	Cycle      simulation.CycleReport
	NewEntries []string
	Snapshot   project.Snapshot
	GameOver   bool
	Score      *scoring.Score // Set once the run is over
}

// MakeDecisionHandler handles the MakeDecision command
type MakeDecisionHandler struct {
	sessionRepo game.SessionRepository
	risks       *risk.Catalog
	decisions   *decision.Catalog
	locks       *common.KeyedLock
}

// NewMakeDecisionHandler creates a new MakeDecisionHandler. locks must be
// shared with every other handler that mutates sessions.
func NewMakeDecisionHandler(
	sessionRepo game.SessionRepository,
	risks *risk.Catalog,
	decisions *decision.Catalog,
	locks *common.KeyedLock,
) *MakeDecisionHandler {
	if risks == nil {
		risks = risk.DefaultCatalog()
	}
	if decisions == nil {
		decisions = decision.NewCatalog()
	}
	if locks == nil {
		locks = common.NewKeyedLock()
	}

	return &MakeDecisionHandler{
		sessionRepo: sessionRepo,
		risks:       risks,
		decisions:   decisions,
		locks:       locks,
	}
}

// Handle executes the MakeDecision command
func (h *MakeDecisionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*MakeDecisionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MakeDecisionCommand")
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

	logger := common.LoggerFromContext(ctx)
	logStart := session.State().Log.Len()
	engine := simulation.NewEngine(h.risks, session.Random())

	result, err := session.Decide(engine, h.decisions, decision.Key(cmd.Key))
	if err != nil {
		var overErr *game.GameOverError
		if errors.As(err, &overErr) {
			logger.Log("WARNING", "Decision rejected: game is over", map[string]interface{}{
				"session_id": id.String(),
				"month":      overErr.Month,
			})
		}
		return nil, err
	}

	if err := h.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	snapshot := session.Snapshot()
	metrics.RecordDecision(id.String(), result.Scenario, result.Accepted)

	response := &MakeDecisionResponse{
		SessionID:  id.String(),
		Month:      result.Month,
		InvalidKey: !result.Accepted,
		Scenario:   result.Scenario,
		Option:     result.Option,
		Cycle:      result.Cycle,
		NewEntries: session.State().Log.Since(logStart),
		Snapshot:   snapshot,
		GameOver:   result.GameOver,
	}

	if !result.Accepted {
		logger.Log("WARNING", "Invalid decision key", map[string]interface{}{
			"session_id": id.String(),
			"month":      result.Month,
			"key":        cmd.Key,
		})
		return response, nil
	}

	metrics.RecordCycle(id.String(), result.Cycle, snapshot)
	logger.Log("INFO", "Decision applied", map[string]interface{}{
		"session_id": id.String(),
		"month":      result.Month,
		"scenario":   result.Scenario.String(),
		"key":        cmd.Key,
		"outcome":    string(result.Cycle.Outcome),
		"risks":      result.Cycle.Triggered,
	})

	if result.GameOver {
		score := scoring.Compute(session.State())
		response.Score = &score
		metrics.RecordGameFinished(id.String(), snapshot.Ending, score.KPI)
		logger.Log("INFO", "Game finished", map[string]interface{}{
			"session_id": id.String(),
			"ending":     string(snapshot.Ending),
			"kpi":        score.KPI,
		})
	}

	return response, nil
}
