package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

func newSession(t *testing.T, rng shared.RandomSource) *game.Session {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s, err := game.NewSessionWithRandom(project.DefaultTargets(), 1, rng, clock)
	require.NoError(t, err)
	return s
}

func TestNewSession_SeedsLog(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))

	assert.False(t, s.ID().IsZero())
	assert.Equal(t, []string{"Project start: target 18 months, 120.0 billion Toman."}, s.Snapshot().Log)
	assert.False(t, s.IsOver())
	assert.Nil(t, s.Pending())
}

func TestSession_Decide_AppliesAndAdvances(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))
	engine := simulation.NewEngine(nil, s.Random())

	result, err := s.Decide(engine, decision.NewCatalog(), "c")
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.Equal(t, 1, result.Month)
	assert.Equal(t, decision.ScenarioContractorTier, result.Scenario)
	assert.Equal(t, simulation.OutcomeAdvanced, result.Cycle.Outcome)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Month)
	assert.Equal(t, 1, snap.ScopeProgress)
	// 120 - 5 (premium) - 6 (burn)
	assert.Equal(t, int64(109_000_000_000), snap.Budget)
	assert.InDelta(t, 17.1, snap.TimeRemaining, 1e-9)
	assert.Equal(t, 94.5, snap.Quality)
	assert.Equal(t, 83.0, snap.Morale)
	assert.Equal(t, "Decision for month 1: Premium contractor (guaranteed quality) | impact (cost: 5.0B, time: -0.1M, morale: 5)", snap.Log[1])
	assert.Equal(t, "--- Phase 1: Site mobilisation and contractor selection ---", snap.Log[2])
	assert.Equal(t, 1, s.Decisions())
	assert.Nil(t, s.Pending())
}

func TestSession_Decide_InvalidKeyIsLoggedWithoutMutation(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))
	engine := simulation.NewEngine(nil, s.Random())
	before := s.Snapshot()

	result, err := s.Decide(engine, decision.NewCatalog(), "z")
	require.NoError(t, err)
	assert.False(t, result.Accepted)

	after := s.Snapshot()
	assert.Equal(t, before.Month, after.Month)
	assert.Equal(t, before.Budget, after.Budget)
	assert.Equal(t, before.Quality, after.Quality)
	assert.Equal(t, before.Morale, after.Morale)
	assert.Equal(t, before.TimeRemaining, after.TimeRemaining)
	require.Len(t, after.Log, 2)
	assert.Equal(t, "Error: option 'z' is not valid for month 1.", after.Log[1])
	assert.Equal(t, 0, s.Decisions())
}

func TestSession_Offer_MonthNineIsStable(t *testing.T) {
	rng := shared.NewSequenceRandom()
	s := newSession(t, rng)
	s.State().Month = 9
	catalog := decision.NewCatalog()

	// First presentation draws 0.1 -> scope change
	rng.Push(0.1, 0.9, 0.9)
	first, err := s.Offer(catalog)
	require.NoError(t, err)
	assert.Equal(t, decision.ScenarioScopeChange, first.Scenario)

	second, err := s.Offer(catalog)
	require.NoError(t, err)
	assert.Equal(t, decision.ScenarioScopeChange, second.Scenario)
	assert.Equal(t, 1, rng.Consumed())

	// An invalid selection is not a new decision: no reroll
	engine := simulation.NewEngine(nil, s.Random())
	_, err = s.Decide(engine, catalog, "q")
	require.NoError(t, err)
	third, err := s.Offer(catalog)
	require.NoError(t, err)
	assert.Equal(t, decision.ScenarioScopeChange, third.Scenario)
	assert.Equal(t, 1, rng.Consumed())
}

func TestSession_Decide_BranchUsesPresentedScenario(t *testing.T) {
	rng := shared.NewSequenceRandom(0.9)
	s := newSession(t, rng)
	s.State().Month = 9
	s.State().ScopeProgress = 8
	catalog := decision.NewCatalog()

	menu, err := s.Offer(catalog)
	require.NoError(t, err)
	require.Equal(t, decision.ScenarioScheduleRecovery, menu.Scenario)

	// Queue a draw that would have produced the other branch
	rng.Push(0.0)
	result, err := s.Decide(simulation.NewEngine(nil, s.Random()), catalog, "c")
	require.NoError(t, err)
	assert.Equal(t, decision.ScenarioScheduleRecovery, result.Scenario)
	assert.Equal(t, "Keep quality and accept the delay", result.Option.Description)
}

func TestSession_Decide_RejectsAfterGameOver(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))
	s.State().Budget = -25_000_000_000
	engine := simulation.NewEngine(nil, s.Random())
	before := s.Snapshot()

	_, err := s.Decide(engine, decision.NewCatalog(), "a")

	var overErr *game.GameOverError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, before, s.Snapshot())
	assert.True(t, s.IsOver())
}

func TestSession_Decide_BudgetFloorEndsGame(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))
	s.State().Budget = -15_000_000_000
	engine := simulation.NewEngine(nil, s.Random())

	result, err := s.Decide(engine, decision.NewCatalog(), "b")
	require.NoError(t, err)

	assert.True(t, result.GameOver)
	assert.True(t, s.IsOver())
	assert.Equal(t, int64(-21_000_000_000), s.Snapshot().Budget)

	_, err = s.Decide(engine, decision.NewCatalog(), "b")
	assert.Error(t, err)
}

func TestSession_Restart_ResetsEverything(t *testing.T) {
	s := newSession(t, shared.ConstantRandom(0.99))
	engine := simulation.NewEngine(nil, s.Random())
	for i := 0; i < 3; i++ {
		_, err := s.Decide(engine, decision.NewCatalog(), "a")
		require.NoError(t, err)
	}
	_, err := s.Offer(decision.NewCatalog())
	require.NoError(t, err)

	s.Restart(7)

	fresh := project.NewState(project.DefaultTargets())
	snap := s.Snapshot()
	assert.Equal(t, fresh.Month, snap.Month)
	assert.Equal(t, fresh.Budget, snap.Budget)
	assert.Equal(t, fresh.TimeRemaining, snap.TimeRemaining)
	assert.Equal(t, fresh.ScopeProgress, snap.ScopeProgress)
	assert.Equal(t, fresh.Quality, snap.Quality)
	assert.Equal(t, fresh.Safety, snap.Safety)
	assert.Equal(t, fresh.ClientSatisfaction, snap.ClientSatisfaction)
	assert.Equal(t, fresh.Morale, snap.Morale)
	assert.Equal(t, fresh.CostOfRisk, snap.CostOfRisk)
	assert.Equal(t, []string{"Project start: target 18 months, 120.0 billion Toman."}, snap.Log)
	assert.Nil(t, s.Pending())
	assert.Equal(t, 0, s.Decisions())
	assert.Equal(t, int64(7), s.Seed())
	assert.Equal(t, int64(0), s.Draws())
}

func TestNewSession_InvalidTargets(t *testing.T) {
	targets := project.DefaultTargets()
	targets.ScopeTarget = 0

	_, err := game.NewSession(targets, 1, nil)
	assert.Error(t, err)
}

func TestSessionID_FromString(t *testing.T) {
	id := game.NewSessionID()

	parsed, err := game.NewSessionIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))
	assert.Len(t, id.Short(), 8)

	_, err = game.NewSessionIDFromString("not-a-uuid")
	assert.Error(t, err)
	_, err = game.NewSessionIDFromString("")
	assert.Error(t, err)
}
