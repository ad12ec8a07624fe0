package project

import "fmt"

// State is the mutable record of a single project run.
//
// Invariants:
// - ScopeProgress never exceeds Targets.ScopeTarget
// - Quality, Safety and ClientSatisfaction stay in [70, 100] under decision
//   updates (risk-driven safety may drop to 50)
// - Morale stays in [50, 100]
// - CostOfRisk never decreases
// - Log is append-only
type State struct {
	Targets Targets

	Month              int
	Budget             int64
	TimeRemaining      float64
	ScopeProgress      int
	Quality            float64
	Safety             float64
	ClientSatisfaction float64
	Morale             float64
	CostOfRisk         int64

	// Halted is set when a monthly cycle found the budget below the floor
	Halted bool

	Log *Log
}

// NewState creates a run at month 1 with every indicator at its initial
// value and an empty log
func NewState(targets Targets) *State {
	return &State{
		Targets:            targets,
		Month:              1,
		Budget:             targets.BudgetTarget,
		TimeRemaining:      targets.TimeTarget,
		ScopeProgress:      0,
		Quality:            targets.InitialQuality,
		Safety:             targets.InitialSafety,
		ClientSatisfaction: targets.InitialClientSatisfaction,
		Morale:             targets.InitialMorale,
		CostOfRisk:         0,
		Log:                NewLog(),
	}
}

// StartEntry is the log line a fresh run is seeded with
func StartEntry(targets Targets) string {
	return fmt.Sprintf("Project start: target %g months, %.1f billion Toman.",
		targets.TimeTarget, Billions(targets.BudgetTarget))
}

// IsComplete reports whether every phase has been delivered
func (s *State) IsComplete() bool {
	return s.ScopeProgress >= s.Targets.ScopeTarget
}

// IsBankrupt reports whether the budget has reached the floor
func (s *State) IsBankrupt() bool {
	return s.Budget <= s.Targets.BudgetFloor
}

// IsTerminal reports whether the run is over
func (s *State) IsTerminal() bool {
	return s.IsComplete() || s.TimeRemaining <= 0 || s.IsBankrupt() || s.Halted
}

// Ending describes why a run stopped
type Ending string

const (
	EndingNone      Ending = ""
	EndingCompleted Ending = "COMPLETED"
	EndingOutOfTime Ending = "OUT_OF_TIME"
	EndingBankrupt  Ending = "BANKRUPT"
)

// Ending returns the reason the run is over, or EndingNone while it is still
// in progress. Completion takes precedence over the other endings.
func (s *State) Ending() Ending {
	switch {
	case s.IsComplete():
		return EndingCompleted
	case s.IsBankrupt() || s.Halted:
		return EndingBankrupt
	case s.TimeRemaining <= 0:
		return EndingOutOfTime
	default:
		return EndingNone
	}
}

// CurrentPhase returns the name of the phase currently being worked on
func (s *State) CurrentPhase() string {
	return PhaseName(s.ScopeProgress)
}

// Snapshot is a read-only copy of a State, safe to hand to a renderer
type Snapshot struct {
	Targets            Targets
	Month              int
	Budget             int64
	TimeRemaining      float64
	ScopeProgress      int
	Quality            float64
	Safety             float64
	ClientSatisfaction float64
	Morale             float64
	CostOfRisk         int64
	Terminal           bool
	Ending             Ending
	Log                []string
}

// Snapshot copies the state, including the log
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Targets:            s.Targets,
		Month:              s.Month,
		Budget:             s.Budget,
		TimeRemaining:      s.TimeRemaining,
		ScopeProgress:      s.ScopeProgress,
		Quality:            s.Quality,
		Safety:             s.Safety,
		ClientSatisfaction: s.ClientSatisfaction,
		Morale:             s.Morale,
		CostOfRisk:         s.CostOfRisk,
		Terminal:           s.IsTerminal(),
		Ending:             s.Ending(),
		Log:                s.Log.Entries(),
	}
}

// Log is an append-only, insertion-ordered sequence of entries
type Log struct {
	entries []string
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// RestoreLog rebuilds a log from persisted entries
func RestoreLog(entries []string) *Log {
	l := &Log{entries: make([]string, len(entries))}
	copy(l.entries, entries)
	return l
}

// Append adds an entry to the end of the log
func (l *Log) Append(entry string) {
	l.entries = append(l.entries, entry)
}

// Appendf formats and appends an entry
func (l *Log) Appendf(format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...))
}

// Entries returns a copy of all entries in insertion order
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry, or "" for an empty log
func (l *Log) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

// Since returns a copy of the entries appended at or after index i
func (l *Log) Since(i int) []string {
	if i < 0 {
		i = 0
	}
	if i >= len(l.entries) {
		return nil
	}
	out := make([]string, len(l.entries)-i)
	copy(out, l.entries[i:])
	return out
}
