package game

import (
	"fmt"
	"time"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/domain/simulation"
)

// PendingMenu records which scenario was drawn for the menu currently on
// offer, so the same choices are shown until a decision is applied
type PendingMenu struct {
	Month    int
	Scenario decision.Scenario
}

// DecisionResult describes what a submitted decision did
type DecisionResult struct {
	Accepted bool
	Month    int
	Key      decision.Key
	Scenario decision.Scenario
	Option   decision.Option
	Cycle    simulation.CycleReport
	GameOver bool
}

// Session is the aggregate root for one playthrough. It exclusively owns
// its project state and random stream; nothing is shared between sessions.
type Session struct {
	id        SessionID
	seed      int64
	rng       *shared.CountingRandom
	targets   project.Targets
	state     *project.State
	pending   *PendingMenu
	over      bool
	decisions int
	createdAt time.Time
	updatedAt time.Time
	clock     shared.Clock
}

// NewSession starts a run whose randomness is derived from seed
func NewSession(targets project.Targets, seed int64, clock shared.Clock) (*Session, error) {
	return NewSessionWithRandom(targets, seed, shared.NewSeededRandom(seed), clock)
}

// NewSessionWithRandom starts a run drawing from rng. seed is recorded for
// display and replay only.
func NewSessionWithRandom(targets project.Targets, seed int64, rng shared.RandomSource, clock shared.Clock) (*Session, error) {
	if err := targets.Validate(); err != nil {
		return nil, fmt.Errorf("invalid targets: %w", err)
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	now := clock.Now()
	s := &Session{
		id:        NewSessionID(),
		seed:      seed,
		rng:       shared.NewCountingRandom(rng),
		targets:   targets,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
	s.resetState()
	return s, nil
}

// ReconstructSession rebuilds a session from persistence. The random
// stream is replayed from seed to the recorded number of draws.
func ReconstructSession(
	id SessionID,
	seed int64,
	draws int64,
	targets project.Targets,
	state *project.State,
	pending *PendingMenu,
	over bool,
	decisions int,
	createdAt time.Time,
	updatedAt time.Time,
	clock shared.Clock,
) *Session {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Session{
		id:        id,
		seed:      seed,
		rng:       shared.ReplaySeeded(seed, draws),
		targets:   targets,
		state:     state,
		pending:   pending,
		over:      over,
		decisions: decisions,
		createdAt: createdAt,
		updatedAt: updatedAt,
		clock:     clock,
	}
}

func (s *Session) resetState() {
	s.state = project.NewState(s.targets)
	s.state.Log.Append(project.StartEntry(s.targets))
	s.pending = nil
	s.over = false
	s.decisions = 0
}

// Getters

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) Seed() int64 {
	return s.seed
}

// Draws returns how many random values the session has consumed
func (s *Session) Draws() int64 {
	return s.rng.Draws()
}

// Random returns the session's random stream for use by its engine
func (s *Session) Random() shared.RandomSource {
	return s.rng
}

func (s *Session) Targets() project.Targets {
	return s.targets
}

// State returns the live project state. Callers outside the application
// layer should prefer Snapshot.
func (s *Session) State() *project.State {
	return s.state
}

func (s *Session) Snapshot() project.Snapshot {
	return s.state.Snapshot()
}

func (s *Session) Pending() *PendingMenu {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

func (s *Session) Decisions() int {
	return s.decisions
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsOver reports whether the run has ended
func (s *Session) IsOver() bool {
	return s.over || s.state.IsTerminal()
}

// Offer returns the menu for the current month. The scenario is drawn on
// the first call of a month and reused by later calls until a decision is
// applied.
func (s *Session) Offer(catalog *decision.Catalog) (*decision.Menu, error) {
	month := s.state.Month
	if s.pending != nil && s.pending.Month == month {
		return catalog.MenuFor(month, s.pending.Scenario)
	}

	menu := catalog.Options(month, s.rng)
	s.pending = &PendingMenu{Month: month, Scenario: menu.Scenario}
	s.touch()
	return menu, nil
}

// Decide applies the option behind key, runs the monthly cycle and
// evaluates termination. An unknown key is logged and leaves every value
// unchanged. Deciding on a finished run returns *GameOverError.
func (s *Session) Decide(engine *simulation.Engine, catalog *decision.Catalog, key decision.Key) (DecisionResult, error) {
	month := s.state.Month
	if s.IsOver() {
		s.over = true
		return DecisionResult{Month: month, Key: key, GameOver: true}, &GameOverError{SessionID: s.id.String(), Month: month}
	}

	menu, err := s.Offer(catalog)
	if err != nil {
		return DecisionResult{}, err
	}

	opt, ok := menu.Lookup(key)
	if !ok {
		s.state.Log.Appendf("Error: option '%s' is not valid for month %d.", key, month)
		s.touch()
		return DecisionResult{Month: month, Key: key, Scenario: menu.Scenario}, nil
	}

	engine.ApplyDecision(s.state, opt)
	s.state.Log.Appendf("Decision for month %d: %s | impact (cost: %.1fB, time: %.1fM, morale: %g)",
		month, opt.Description, project.Billions(opt.Cost), opt.Time, opt.Morale)

	report := engine.RunMonthlyCycle(s.state)

	s.pending = nil
	s.decisions++
	if s.state.IsTerminal() {
		s.over = true
	}
	s.touch()

	return DecisionResult{
		Accepted: true,
		Month:    month,
		Key:      key,
		Scenario: menu.Scenario,
		Option:   opt,
		Cycle:    report,
		GameOver: s.over,
	}, nil
}

// Restart discards the run and starts over from the initial targets with
// a fresh random stream
func (s *Session) Restart(seed int64) {
	s.seed = seed
	s.rng = shared.NewCountingRandom(shared.NewSeededRandom(seed))
	s.resetState()
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = s.clock.Now()
}
