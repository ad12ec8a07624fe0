package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/game/commands"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/test/helpers"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, level+": "+message)
}

func TestStartGame_CreatesAndPersistsSession(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	handler := commands.NewStartGameHandler(repo, project.DefaultTargets(), shared.NewMockClock(helpers.FixedStart))
	seed := int64(42)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.StartGameCommand{Seed: &seed})

	// Assert
	require.NoError(t, err)
	started := resp.(*commands.StartGameResponse)
	assert.Equal(t, int64(42), started.Seed)
	assert.Equal(t, 1, started.Snapshot.Month)
	assert.Equal(t, []string{"Project start: target 18 months, 120.0 billion Toman."}, started.Snapshot.Log)
	assert.Equal(t, 1, repo.Count())
}

func TestStartGame_SeedFromClockAndCustomTargets(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	clock := shared.NewMockClock(helpers.FixedStart)
	handler := commands.NewStartGameHandler(repo, project.DefaultTargets(), clock)
	targets := project.DefaultTargets()
	targets.BudgetTarget = 200_000_000_000

	// Act
	resp, err := handler.Handle(context.Background(), &commands.StartGameCommand{Targets: &targets})

	// Assert
	require.NoError(t, err)
	started := resp.(*commands.StartGameResponse)
	assert.Equal(t, helpers.FixedStart.UnixNano(), started.Seed)
	assert.Equal(t, int64(200_000_000_000), started.Snapshot.Budget)
}

func TestStartGame_RejectsInvalidTargets(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	handler := commands.NewStartGameHandler(repo, project.DefaultTargets(), nil)
	targets := project.DefaultTargets()
	targets.TimeTarget = 0

	// Act
	_, err := handler.Handle(context.Background(), &commands.StartGameCommand{Targets: &targets})

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 0, repo.Count())
}

func TestMakeDecision_AppliesAndReportsNewEntries(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, nil)
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	resp, err := handler.Handle(ctx, &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "b"})

	// Assert
	require.NoError(t, err)
	made := resp.(*commands.MakeDecisionResponse)
	assert.False(t, made.InvalidKey)
	assert.Equal(t, 1, made.Month)
	assert.Equal(t, decision.ScenarioContractorTier, made.Scenario)
	assert.Equal(t, 2, made.Snapshot.Month)
	assert.Equal(t, []string{
		"Decision for month 1: Mid-quality contractor (standard) | impact (cost: 0.0B, time: 0.0M, morale: 0)",
		"--- Phase 1: Site mobilisation and contractor selection ---",
		"   [Monthly report]: phase 'Site mobilisation and contractor selection' completed on schedule.",
		"   [Risk]: no significant random event this month.",
	}, made.NewEntries)
	assert.False(t, made.GameOver)
	assert.Nil(t, made.Score)
	assert.Equal(t, 1, repo.SaveCalls)
	assert.Contains(t, logger.messages, "INFO: Decision applied")
}

func TestMakeDecision_ConcurrentDecisionsAreSerialised(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, common.NewKeyedLock())
	const decisions = 6

	// Act
	var wg sync.WaitGroup
	errs := make(chan error, decisions)
	for i := 0; i < decisions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "b"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, decisions, session.Decisions())
	assert.Equal(t, decisions+1, session.Snapshot().Month)
	assert.Equal(t, decisions, repo.SaveCalls)
}

func TestMakeDecision_InvalidKeyIsFailSoft(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, nil)
	before := session.Snapshot()

	// Act
	resp, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "x"})

	// Assert
	require.NoError(t, err)
	made := resp.(*commands.MakeDecisionResponse)
	assert.True(t, made.InvalidKey)
	assert.Equal(t, []string{"Error: option 'x' is not valid for month 1."}, made.NewEntries)
	assert.Equal(t, before.Month, made.Snapshot.Month)
	assert.Equal(t, before.Budget, made.Snapshot.Budget)
	assert.Equal(t, before.Morale, made.Snapshot.Morale)
}

func TestMakeDecision_GameOverIsRejected(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	session.State().ScopeProgress = 18
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, nil)
	before := session.Snapshot()

	// Act
	_, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "a"})

	// Assert
	var overErr *game.GameOverError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, before, session.Snapshot())
	assert.Equal(t, 0, repo.SaveCalls)
}

func TestMakeDecision_FinalDecisionCarriesScore(t *testing.T) {
	// Arrange: one phase left, enough morale to complete it
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	session.State().Month = 18
	session.State().ScopeProgress = 17
	session.State().TimeRemaining = 1.5
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, nil)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "c"})

	// Assert
	require.NoError(t, err)
	made := resp.(*commands.MakeDecisionResponse)
	assert.True(t, made.GameOver)
	require.NotNil(t, made.Score)
	assert.Equal(t, 18, made.Score.FinalTime)
	assert.Equal(t, project.EndingCompleted, made.Snapshot.Ending)
}

func TestMakeDecision_UsesConfiguredRiskCatalog(t *testing.T) {
	// Arrange: a catalog with a single certain event in month 1
	certain, err := risk.NewCatalog(risk.MustNewEvent("X1", "Crane collapse", 1, []int{1}, risk.Impacts{Cost: risk.Cost(1_000_000_000)}))
	require.NoError(t, err)
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	handler := commands.NewMakeDecisionHandler(repo, certain, nil, nil)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "b"})

	// Assert
	require.NoError(t, err)
	made := resp.(*commands.MakeDecisionResponse)
	assert.Equal(t, []string{"X1"}, made.Cycle.Triggered)
	assert.Equal(t, int64(1_000_000_000), made.Snapshot.CostOfRisk)
}

func TestMakeDecision_UnknownSession(t *testing.T) {
	// Arrange
	handler := commands.NewMakeDecisionHandler(helpers.NewMockSessionRepository(), nil, nil, nil)

	// Act
	_, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: game.NewSessionID().String(), Key: "a"})

	// Assert
	var notFound *game.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)

	_, err = handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: "bogus", Key: "a"})
	assert.Error(t, err)
}

func TestMakeDecision_SaveFailureIsReported(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	repo.SaveErr = errors.New("disk full")
	handler := commands.NewMakeDecisionHandler(repo, nil, nil, nil)

	// Act
	_, err := handler.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "a"})

	// Assert
	assert.ErrorContains(t, err, "disk full")
}

func TestRestartGame_ResetsRun(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session := helpers.NewTestSession(t, 5)
	repo.AddSession(session)
	decide := commands.NewMakeDecisionHandler(repo, nil, nil, nil)
	for i := 0; i < 4; i++ {
		_, err := decide.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "a"})
		require.NoError(t, err)
	}
	handler := commands.NewRestartGameHandler(repo, nil, nil)
	seed := int64(11)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.RestartGameCommand{SessionID: session.ID().String(), Seed: &seed})

	// Assert
	require.NoError(t, err)
	restarted := resp.(*commands.RestartGameResponse)
	assert.Equal(t, int64(11), restarted.Seed)
	assert.Equal(t, 1, restarted.Snapshot.Month)
	assert.Equal(t, int64(120_000_000_000), restarted.Snapshot.Budget)
	assert.Equal(t, []string{"Project start: target 18 months, 120.0 billion Toman."}, restarted.Snapshot.Log)
	assert.False(t, session.IsOver())
	assert.Nil(t, session.Pending())
}

func TestEndGame_RemovesSession(t *testing.T) {
	// Arrange
	repo := helpers.NewMockSessionRepository()
	session, _ := helpers.NewScriptedSession(t)
	repo.AddSession(session)
	decide := commands.NewMakeDecisionHandler(repo, nil, nil, nil)
	_, err := decide.Handle(context.Background(), &commands.MakeDecisionCommand{SessionID: session.ID().String(), Key: "b"})
	require.NoError(t, err)
	handler := commands.NewEndGameHandler(repo, nil)
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	resp, err := handler.Handle(ctx, &commands.EndGameCommand{SessionID: session.ID().String()})

	// Assert
	require.NoError(t, err)
	ended := resp.(*commands.EndGameResponse)
	assert.Equal(t, 1, ended.Decisions)
	assert.False(t, ended.WasOver)
	assert.Equal(t, 0, repo.Count())
	assert.Contains(t, logger.messages, "INFO: Game ended")

	_, err = handler.Handle(ctx, &commands.EndGameCommand{SessionID: session.ID().String()})
	var notFound *game.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	repo := helpers.NewMockSessionRepository()
	handlers := []common.RequestHandler{
		commands.NewStartGameHandler(repo, project.DefaultTargets(), nil),
		commands.NewMakeDecisionHandler(repo, nil, nil, nil),
		commands.NewRestartGameHandler(repo, nil, nil),
		commands.NewEndGameHandler(repo, nil),
	}

	for _, h := range handlers {
		_, err := h.Handle(context.Background(), struct{}{})
		assert.Error(t, err)
	}
}
