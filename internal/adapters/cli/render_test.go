package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
)

func TestClassifyEntry(t *testing.T) {
	tests := []struct {
		entry string
		want  EntryKind
	}{
		{"RISK EVENT TRIGGERED: Heavy snowfall", EntryRisk},
		{"GAME OVER: the budget is deeply negative and the project has been forcibly halted.", EntryRisk},
		{"Error: option 'z' is not valid for month 3.", EntryError},
		{"   [Monthly report]: WARNING delay in phase 'Foundations'. (morale effect)", EntryDelay},
		{"--- Phase 2: Excavation and shoring ---", EntryPhase},
		{"   [Monthly report]: phase 'Foundations' completed on schedule.", EntryCompleted},
		{"Decision for month 1: Standard contractor | impact (cost: 0.0B, time: 0.0M, morale: 0)", EntryDecision},
		{"   [Risk]: no significant random event this month.", EntryPlain},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyEntry(tt.entry), tt.entry)
	}
}

func TestOptionLabel(t *testing.T) {
	label := OptionLabel(decision.Choice{
		Key: "c",
		Option: decision.Option{
			Description: "Premium contractor",
			Cost:        5_000_000_000,
			Time:        -0.1,
			Morale:      5,
		},
	})

	assert.Equal(t, "c) Premium contractor [cost +5.0 B | time -0.1 M | morale +5]", label)
}

func TestRenderer_LogNewestFirstWithLimit(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	// Act
	r.Log([]string{"first", "second", "third"}, 2)

	// Assert
	out := buf.String()
	assert.Contains(t, out, "third")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "first")
	assert.Less(t, strings.Index(out, "third"), strings.Index(out, "second"))
}

func TestRenderer_ColorsOnlyWhenEnabled(t *testing.T) {
	var plain, colored bytes.Buffer

	NewRenderer(&plain, false).Log([]string{"RISK EVENT TRIGGERED: Flood"}, 0)
	NewRenderer(&colored, true).Log([]string{"RISK EVENT TRIGGERED: Flood"}, 0)

	assert.NotContains(t, plain.String(), "\033[")
	assert.Contains(t, colored.String(), "\033[31mRISK EVENT TRIGGERED: Flood\033[0m")
}

func TestRenderer_Dashboard(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	state := project.NewState(project.DefaultTargets())

	// Act
	NewRenderer(&buf, false).Dashboard(state.Snapshot())

	// Assert
	out := buf.String()
	assert.Contains(t, out, "=== Month 1 | Site mobilisation and contractor selection ===")
	assert.Contains(t, out, "Budget:              120.0 billion Toman")
	assert.Contains(t, out, "Time remaining:      18.0 months")
	assert.Contains(t, out, "Scope:               0 of 18 phases")
	assert.NotContains(t, out, "Cost of risk")
}

func TestRenderer_MenuShowsNotice(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	menu, err := decision.NewCatalog().MenuFor(9, decision.ScenarioScopeChange)
	require.NoError(t, err)

	// Act
	NewRenderer(&buf, false).Menu(menu, "Masonry and rough works")

	// Assert
	out := buf.String()
	assert.Contains(t, out, "Challenge for month 9: Masonry and rough works")
	assert.Contains(t, out, menu.Notice)
	for _, key := range menu.Keys() {
		assert.Contains(t, out, "  "+key.String()+") ")
	}
}

func TestRenderer_FinalKeepsLogOrder(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	score := scoring.Score{FinalTime: 18, FinalCost: 110_000_000_000, KPI: 95}

	// Act
	NewRenderer(&buf, false).Final(project.EndingCompleted, score, []string{"one", "two"})

	// Assert
	out := buf.String()
	assert.Contains(t, out, "Project delivered")
	assert.Contains(t, out, "Final KPI:   95.0")
	assert.Contains(t, out, "Final time:  18 months")
	assert.Contains(t, out, "Final cost:  110.0 billion Toman")
	assert.Less(t, strings.Index(out, "one"), strings.Index(out, "two"))
}

func TestFormatMonths(t *testing.T) {
	assert.Equal(t, "1-17", formatMonths([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}))
	assert.Equal(t, "2,5-7,9", formatMonths([]int{2, 5, 6, 7, 9}))
	assert.Equal(t, "", formatMonths(nil))
}

func TestEndingMessage(t *testing.T) {
	assert.Contains(t, EndingMessage(project.EndingBankrupt), "budget")
	assert.Contains(t, EndingMessage(project.EndingOutOfTime), "schedule")
	assert.Equal(t, "Project in progress.", EndingMessage(project.EndingNone))
}
