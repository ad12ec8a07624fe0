package autoplay

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/game/commands"
	"github.com/andrescamacho/construction-sim/internal/application/game/queries"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
)

// maxTurns bounds a run in case a strategy keeps submitting rejected keys
const maxTurns = 200

// Turn records one automated decision
type Turn struct {
	Month    int
	Scenario decision.Scenario
	Key      decision.Key
	Option   string
}

// Result is the outcome of one automated run
type Result struct {
	SessionID string
	Seed      int64
	Strategy  string
	Turns     []Turn
	Ending    project.Ending
	Score     scoring.Score
	Log       []string
}

// Runner plays whole games through the mediator
type Runner struct {
	mediator common.Mediator
	limiter  *rate.Limiter
}

// NewRunner creates a runner. A nil limiter plays unpaced.
func NewRunner(mediator common.Mediator, limiter *rate.Limiter) *Runner {
	return &Runner{mediator: mediator, limiter: limiter}
}

// Run starts a session with seed and plays it to the end with strategy.
// The session is removed from the store when Run returns, whether or not
// the run finished.
func (r *Runner) Run(ctx context.Context, strategy Strategy, seed *int64) (_ *Result, err error) {
	resp, err := r.mediator.Send(ctx, &commands.StartGameCommand{Seed: seed})
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	started := resp.(*commands.StartGameResponse)
	defer func() {
		// Cleanup must still run after ctx is cancelled
		_, endErr := r.mediator.Send(context.WithoutCancel(ctx), &commands.EndGameCommand{SessionID: started.SessionID})
		if endErr != nil && err == nil {
			err = fmt.Errorf("failed to end game: %w", endErr)
		}
	}()

	result := &Result{
		SessionID: started.SessionID,
		Seed:      started.Seed,
		Strategy:  strategy.Name(),
	}

	over := started.Snapshot.Terminal
	for turn := 0; !over; turn++ {
		if turn >= maxTurns {
			return nil, fmt.Errorf("run %s did not finish within %d turns", started.SessionID, maxTurns)
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		optResp, err := r.mediator.Send(ctx, &queries.GetDecisionOptionsQuery{SessionID: started.SessionID})
		if err != nil {
			return nil, fmt.Errorf("failed to get decision options: %w", err)
		}
		menu := optResp.(*queries.GetDecisionOptionsResponse).Menu
		key := strategy.Choose(menu)

		decResp, err := r.mediator.Send(ctx, &commands.MakeDecisionCommand{
			SessionID: started.SessionID,
			Key:       string(key),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to apply decision: %w", err)
		}
		made := decResp.(*commands.MakeDecisionResponse)
		if made.InvalidKey {
			return nil, fmt.Errorf("strategy %s chose unknown key %q in month %d", strategy.Name(), key, made.Month)
		}

		result.Turns = append(result.Turns, Turn{
			Month:    made.Month,
			Scenario: made.Scenario,
			Key:      key,
			Option:   made.Option.Description,
		})
		over = made.GameOver
	}

	scoreResp, err := r.mediator.Send(ctx, &queries.GetFinalScoreQuery{SessionID: started.SessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to get final score: %w", err)
	}
	final := scoreResp.(*queries.GetFinalScoreResponse)

	result.Ending = final.Ending
	result.Score = final.Score
	result.Log = final.Log
	return result, nil
}
