package helpers

import (
	"testing"
	"time"

	"github.com/andrescamacho/construction-sim/internal/domain/game"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// FixedStart is the clock start used by fixtures
var FixedStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// NewTestSession creates a seeded session with default targets on a mock clock
func NewTestSession(t *testing.T, seed int64) *game.Session {
	t.Helper()
	s, err := game.NewSession(project.DefaultTargets(), seed, shared.NewMockClock(FixedStart))
	if err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return s
}

// NewScriptedSession creates a session drawing from the given values.
// Once they run out every draw is 0.999999, so no risk event fires.
func NewScriptedSession(t *testing.T, draws ...float64) (*game.Session, *shared.SequenceRandom) {
	t.Helper()
	rng := shared.NewSequenceRandom(draws...)
	s, err := game.NewSessionWithRandom(project.DefaultTargets(), 0, rng, shared.NewMockClock(FixedStart))
	if err != nil {
		t.Fatalf("failed to create scripted session: %v", err)
	}
	return s, rng
}
