package autoplay

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
)

// Strategy picks an option key from a menu
type Strategy interface {
	Name() string
	Choose(menu *decision.Menu) decision.Key
}

// Strategy names
const (
	StrategyStandard = "standard"
	StrategyCheap    = "cheap"
	StrategyPremium  = "premium"
	StrategyRandom   = "random"
)

// fixedStrategy always picks the same key for a scenario
type fixedStrategy struct {
	name  string
	picks map[decision.Scenario]decision.Key
}

func (s *fixedStrategy) Name() string {
	return s.name
}

// Choose returns the preferred key, or the first key when the scenario has
// no preference or the preferred key is not on the menu
func (s *fixedStrategy) Choose(menu *decision.Menu) decision.Key {
	if key, ok := s.picks[menu.Scenario]; ok {
		if _, offered := menu.Lookup(key); offered {
			return key
		}
	}
	if menu.Len() == 0 {
		return ""
	}
	return menu.Choices[0].Key
}

// randomStrategy picks uniformly among offered keys. Its generator is
// separate from the session's, so it never shifts risk draws.
type randomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *randomStrategy) Name() string {
	return StrategyRandom
}

func (s *randomStrategy) Choose(menu *decision.Menu) decision.Key {
	if menu.Len() == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return menu.Choices[s.rng.Intn(menu.Len())].Key
}

// NewStrategy resolves a strategy by name. seed only affects "random".
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case StrategyStandard, "":
		return &fixedStrategy{name: StrategyStandard, picks: map[decision.Scenario]decision.Key{
			decision.ScenarioContractorTier:   "b",
			decision.ScenarioMaterialSourcing: "b",
			decision.ScenarioScopeChange:      "b",
			decision.ScenarioScheduleRecovery: "c",
			decision.ScenarioRoutine:          "c",
		}}, nil
	case StrategyCheap:
		return &fixedStrategy{name: StrategyCheap, picks: map[decision.Scenario]decision.Key{
			decision.ScenarioContractorTier:   "a",
			decision.ScenarioMaterialSourcing: "c",
			decision.ScenarioScopeChange:      "c",
			decision.ScenarioScheduleRecovery: "b",
			decision.ScenarioRoutine:          "a",
		}}, nil
	case StrategyPremium:
		return &fixedStrategy{name: StrategyPremium, picks: map[decision.Scenario]decision.Key{
			decision.ScenarioContractorTier:   "c",
			decision.ScenarioMaterialSourcing: "a",
			decision.ScenarioScopeChange:      "a",
			decision.ScenarioScheduleRecovery: "a",
			decision.ScenarioRoutine:          "b",
		}}, nil
	case StrategyRandom:
		return &randomStrategy{rng: rand.New(rand.NewSource(seed))}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}
