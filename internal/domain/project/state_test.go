package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/domain/project"
)

func TestNewState_InitialValues(t *testing.T) {
	s := project.NewState(project.DefaultTargets())

	assert.Equal(t, 1, s.Month)
	assert.Equal(t, int64(120_000_000_000), s.Budget)
	assert.Equal(t, 18.0, s.TimeRemaining)
	assert.Equal(t, 0, s.ScopeProgress)
	assert.Equal(t, 90.0, s.Quality)
	assert.Equal(t, 90.0, s.Safety)
	assert.Equal(t, 80.0, s.ClientSatisfaction)
	assert.Equal(t, 80.0, s.Morale)
	assert.Equal(t, int64(0), s.CostOfRisk)
	assert.False(t, s.Halted)
	assert.Equal(t, 0, s.Log.Len())
	assert.False(t, s.IsTerminal())
}

func TestState_TerminalConditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *project.State)
	}{
		{"scope complete", func(s *project.State) { s.ScopeProgress = 18 }},
		{"out of time", func(s *project.State) { s.TimeRemaining = 0 }},
		{"negative time", func(s *project.State) { s.TimeRemaining = -0.25 }},
		{"budget at floor", func(s *project.State) { s.Budget = -20_000_000_000 }},
		{"halted", func(s *project.State) { s.Halted = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := project.NewState(project.DefaultTargets())
			tt.mutate(s)
			assert.True(t, s.IsTerminal())
		})
	}

	s := project.NewState(project.DefaultTargets())
	s.Budget = -19_999_999_999
	s.TimeRemaining = 0.1
	assert.False(t, s.IsTerminal())
}

func TestState_Ending(t *testing.T) {
	s := project.NewState(project.DefaultTargets())
	assert.Equal(t, project.EndingNone, s.Ending())

	s.TimeRemaining = 0
	assert.Equal(t, project.EndingOutOfTime, s.Ending())

	s.Budget = -20_000_000_000
	assert.Equal(t, project.EndingBankrupt, s.Ending())

	s.ScopeProgress = 18
	assert.Equal(t, project.EndingCompleted, s.Ending())
}

func TestStartEntry(t *testing.T) {
	assert.Equal(t, "Project start: target 18 months, 120.0 billion Toman.",
		project.StartEntry(project.DefaultTargets()))
}

func TestLog_AppendOnly(t *testing.T) {
	l := project.NewLog()
	l.Append("one")
	l.Appendf("two %d", 2)

	entries := l.Entries()
	assert.Equal(t, []string{"one", "two 2"}, entries)

	entries[0] = "changed"
	assert.Equal(t, "one", l.Entries()[0])
	assert.Equal(t, "two 2", l.Last())
	assert.Equal(t, []string{"two 2"}, l.Since(1))
	assert.Nil(t, l.Since(2))
}

func TestRestoreLog_Copies(t *testing.T) {
	src := []string{"a", "b"}
	l := project.RestoreLog(src)
	src[0] = "z"

	assert.Equal(t, []string{"a", "b"}, l.Entries())
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := project.NewState(project.DefaultTargets())
	s.Log.Append("first")

	snap := s.Snapshot()
	s.Log.Append("second")
	s.Budget = 1

	assert.Equal(t, []string{"first"}, snap.Log)
	assert.Equal(t, int64(120_000_000_000), snap.Budget)
	assert.False(t, snap.Terminal)
}

func TestTargets_Validate(t *testing.T) {
	require.NoError(t, project.DefaultTargets().Validate())

	bad := project.DefaultTargets()
	bad.ScopeTarget = 19
	assert.Error(t, bad.Validate())

	bad = project.DefaultTargets()
	bad.BudgetFloor = bad.BudgetTarget
	assert.Error(t, bad.Validate())

	bad = project.DefaultTargets()
	bad.TimeTarget = 0
	assert.Error(t, bad.Validate())
}

func TestPhaseName(t *testing.T) {
	assert.Equal(t, 18, project.PhaseCount)
	assert.Equal(t, "Site mobilisation and contractor selection", project.PhaseName(0))
	assert.Equal(t, "Final handover and snagging", project.PhaseName(17))
	assert.Equal(t, "final phase", project.PhaseName(18))
}
