package autoplay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/game/autoplay"
	"github.com/andrescamacho/construction-sim/internal/application/setup"
	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/test/helpers"
)

func newMediator(t *testing.T) common.Mediator {
	t.Helper()
	med, _ := newMediatorWithRepository(t)
	return med
}

func newMediatorWithRepository(t *testing.T) (common.Mediator, *helpers.MockSessionRepository) {
	t.Helper()
	repo := helpers.NewMockSessionRepository()
	registry := setup.NewHandlerRegistry(
		repo,
		project.DefaultTargets(),
		nil,
		shared.NewMockClock(helpers.FixedStart),
	)
	med, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)
	return med, repo
}

func TestNewStrategy_UnknownName(t *testing.T) {
	_, err := autoplay.NewStrategy("reckless", 1)
	assert.Error(t, err)
}

func TestFixedStrategy_PicksPreferredKey(t *testing.T) {
	// Arrange
	catalog := decision.NewCatalog()
	menu, err := catalog.MenuFor(1, decision.ScenarioContractorTier)
	require.NoError(t, err)

	cases := map[string]decision.Key{
		autoplay.StrategyStandard: "b",
		autoplay.StrategyCheap:    "a",
		autoplay.StrategyPremium:  "c",
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			strategy, err := autoplay.NewStrategy(name, 1)
			require.NoError(t, err)

			// Act & Assert
			assert.Equal(t, want, strategy.Choose(menu))
		})
	}
}

func TestRandomStrategy_OnlyPicksOfferedKeys(t *testing.T) {
	// Arrange
	strategy, err := autoplay.NewStrategy(autoplay.StrategyRandom, 5)
	require.NoError(t, err)
	menu, err := decision.NewCatalog().MenuFor(4, decision.ScenarioRoutine)
	require.NoError(t, err)

	// Act & Assert
	for i := 0; i < 50; i++ {
		_, ok := menu.Lookup(strategy.Choose(menu))
		assert.True(t, ok)
	}
}

func TestRunner_PlaysToTheEnd(t *testing.T) {
	// Arrange
	runner := autoplay.NewRunner(newMediator(t), rate.NewLimiter(rate.Inf, 1))
	strategy, err := autoplay.NewStrategy(autoplay.StrategyPremium, 0)
	require.NoError(t, err)
	seed := int64(2024)

	// Act
	result, err := runner.Run(context.Background(), strategy, &seed)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(2024), result.Seed)
	assert.Equal(t, autoplay.StrategyPremium, result.Strategy)
	require.NotEmpty(t, result.Turns)
	assert.Equal(t, decision.ScenarioContractorTier, result.Turns[0].Scenario)
	assert.Equal(t, decision.Key("c"), result.Turns[0].Key)
	assert.NotEqual(t, project.EndingNone, result.Ending)
	assert.GreaterOrEqual(t, result.Score.KPI, 0.0)
	assert.Equal(t, "Project start: target 18 months, 120.0 billion Toman.", result.Log[0])
}

func TestRunner_SameSeedSameRun(t *testing.T) {
	// Arrange
	seed := int64(77)
	first, err := autoplay.NewStrategy(autoplay.StrategyRandom, 3)
	require.NoError(t, err)
	second, err := autoplay.NewStrategy(autoplay.StrategyRandom, 3)
	require.NoError(t, err)

	// Act
	a, err := autoplay.NewRunner(newMediator(t), nil).Run(context.Background(), first, &seed)
	require.NoError(t, err)
	b, err := autoplay.NewRunner(newMediator(t), nil).Run(context.Background(), second, &seed)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, a.Turns, b.Turns)
	assert.Equal(t, a.Log, b.Log)
	assert.Equal(t, a.Score, b.Score)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestRunner_RemovesFinishedSessions(t *testing.T) {
	// Arrange
	med, repo := newMediatorWithRepository(t)
	runner := autoplay.NewRunner(med, nil)
	strategy, err := autoplay.NewStrategy(autoplay.StrategyCheap, 0)
	require.NoError(t, err)

	// Act
	for i := int64(0); i < 5; i++ {
		seed := 100 + i
		_, err := runner.Run(context.Background(), strategy, &seed)
		require.NoError(t, err)
	}

	// Assert
	assert.Equal(t, 0, repo.Count())
}

func TestRunner_CancelledContext(t *testing.T) {
	// Arrange
	med, repo := newMediatorWithRepository(t)
	runner := autoplay.NewRunner(med, rate.NewLimiter(rate.Every(1), 0))
	strategy, err := autoplay.NewStrategy(autoplay.StrategyStandard, 0)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err = runner.Run(ctx, strategy, nil)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 0, repo.Count())
}
