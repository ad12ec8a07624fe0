package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/application/game/queries"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/test/helpers"
)

func TestGetProjectStatus_ReturnsDetachedSnapshot(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session := helpers.NewTestSession(t, 3)
	repo.AddSession(session)
	handler := queries.NewGetProjectStatusHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetProjectStatusQuery{SessionID: session.ID().String()})

	// Assert
	require.NoError(t, err)
	status := resp.(*queries.GetProjectStatusResponse)
	assert.Equal(t, int64(3), status.Seed)
	assert.False(t, status.GameOver)
	assert.Equal(t, 1, status.Snapshot.Month)

	status.Snapshot.Log[0] = "tampered"
	assert.Equal(t, "Project start: target 18 months, 120.0 billion Toman.", session.Snapshot().Log[0])
}

func TestGetDecisionOptions_StableWithinMonth(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, rng := helpers.NewScriptedSession(t, 0.05)
	session.State().Month = 9
	repo.AddSession(session)
	handler := queries.NewGetDecisionOptionsHandler(repo, nil, nil)
	query := &queries.GetDecisionOptionsQuery{SessionID: session.ID().String()}

	// Act
	first, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	rng.Push(0.95)
	second, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)

	// Assert
	menu1 := first.(*queries.GetDecisionOptionsResponse).Menu
	menu2 := second.(*queries.GetDecisionOptionsResponse).Menu
	assert.Equal(t, decision.ScenarioScopeChange, menu1.Scenario)
	assert.Equal(t, menu1.Scenario, menu2.Scenario)
	assert.NotEmpty(t, menu1.Notice)
	assert.Equal(t, []decision.Key{"a", "b", "c"}, menu1.Keys())
	assert.Equal(t, 1, rng.Consumed())
	assert.Equal(t, 1, repo.SaveCalls)
}

func TestGetDecisionOptions_RoutineMonth(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, rng := helpers.NewScriptedSession(t)
	session.State().Month = 4
	repo.AddSession(session)
	handler := queries.NewGetDecisionOptionsHandler(repo, nil, nil)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetDecisionOptionsQuery{SessionID: session.ID().String()})

	// Assert
	require.NoError(t, err)
	menu := resp.(*queries.GetDecisionOptionsResponse).Menu
	assert.Equal(t, decision.ScenarioRoutine, menu.Scenario)
	assert.Equal(t, 3, menu.Len())
	assert.Equal(t, 0, rng.Consumed())
}

func TestGetDecisionOptions_GameOver(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	session.State().TimeRemaining = 0
	repo.AddSession(session)
	handler := queries.NewGetDecisionOptionsHandler(repo, nil, nil)

	// Act
	_, err := handler.Handle(context.Background(), &queries.GetDecisionOptionsQuery{SessionID: session.ID().String()})

	// Assert
	var overErr *game.GameOverError
	assert.ErrorAs(t, err, &overErr)
}

func TestGetFinalScore_MatchesWorkedExample(t *testing.T) {
	// Arrange: 18 months, exactly on budget, 90/90/80 indicators
	repo := helpers.NewMockSessionRepository()
	session := helpers.NewTestSession(t, 1)
	state := session.State()
	state.Month = 19
	state.ScopeProgress = 18
	state.Budget = 0
	repo.AddSession(session)
	handler := queries.NewGetFinalScoreHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetFinalScoreQuery{SessionID: session.ID().String()})

	// Assert
	require.NoError(t, err)
	score := resp.(*queries.GetFinalScoreResponse)
	assert.True(t, score.Final)
	assert.Equal(t, project.EndingCompleted, score.Ending)
	assert.Equal(t, 18, score.Score.FinalTime)
	assert.Equal(t, int64(120_000_000_000), score.Score.FinalCost)
	assert.InDelta(t, 95.0, score.Score.KPI, 1e-9)
	assert.Len(t, score.Log, 1)
}

func TestGetFinalScore_ProvisionalWhileRunning(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session := helpers.NewTestSession(t, 1)
	repo.AddSession(session)
	handler := queries.NewGetFinalScoreHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetFinalScoreQuery{SessionID: session.ID().String()})

	// Assert
	require.NoError(t, err)
	score := resp.(*queries.GetFinalScoreResponse)
	assert.False(t, score.Final)
	assert.Equal(t, project.EndingNone, score.Ending)
}

func TestQueries_InvalidSessionID(t *testing.T) {
	repo := helpers.NewMockSessionRepository()

	_, err := queries.NewGetProjectStatusHandler(repo).Handle(context.Background(), &queries.GetProjectStatusQuery{SessionID: "nope"})
	assert.Error(t, err)

	_, err = queries.NewGetFinalScoreHandler(repo).Handle(context.Background(), &queries.GetFinalScoreQuery{SessionID: game.NewSessionID().String()})
	var notFound *game.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)
}
