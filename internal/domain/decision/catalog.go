package decision

import (
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// Months with dedicated scenarios
const (
	ContractorMonth  = 1
	MaterialMonth    = 7
	BranchMonth      = 9
	ScopeChangeOdds  = 0.3
	scopeChangeAlert = "Client requested major penthouse changes: cost +15 billion, time +1.5 months."
)

// Menu is the set of choices presented for one month
type Menu struct {
	Month    int
	Scenario Scenario
	// Notice is an optional message shown above the choices
	Notice  string
	Choices []Choice
}

// Lookup returns the option for key
func (m *Menu) Lookup(key Key) (Option, bool) {
	for _, c := range m.Choices {
		if c.Key == key {
			return c.Option, true
		}
	}
	return Option{}, false
}

// Keys returns the option keys in presentation order
func (m *Menu) Keys() []Key {
	keys := make([]Key, len(m.Choices))
	for i, c := range m.Choices {
		keys[i] = c.Key
	}
	return keys
}

// Len returns the number of choices
func (m *Menu) Len() int {
	return len(m.Choices)
}

// Catalog maps months to scenarios and scenarios to choices
type Catalog struct {
	choices map[Scenario][]Choice
}

// NewCatalog creates the built-in decision catalog
func NewCatalog() *Catalog {
	c := &Catalog{choices: make(map[Scenario][]Choice)}
	for _, s := range AllScenarios() {
		c.choices[s] = builtinChoices(s)
	}
	return c
}

// ScenarioFor resolves the scenario for a month. Month 9 consumes exactly
// one draw from rng; every other month consumes none.
func (c *Catalog) ScenarioFor(month int, rng shared.RandomSource) Scenario {
	switch month {
	case ContractorMonth:
		return ScenarioContractorTier
	case MaterialMonth:
		return ScenarioMaterialSourcing
	case BranchMonth:
		if rng.Float64() < ScopeChangeOdds {
			return ScenarioScopeChange
		}
		return ScenarioScheduleRecovery
	default:
		return ScenarioRoutine
	}
}

// MenuFor builds the menu for an already-resolved scenario without drawing
func (c *Catalog) MenuFor(month int, scenario Scenario) (*Menu, error) {
	choices, ok := c.choices[scenario]
	if !ok {
		return nil, fmt.Errorf("no choices for scenario %s", scenario)
	}

	menu := &Menu{
		Month:    month,
		Scenario: scenario,
		Choices:  make([]Choice, len(choices)),
	}
	copy(menu.Choices, choices)
	if scenario == ScenarioScopeChange {
		menu.Notice = scopeChangeAlert
	}
	return menu, nil
}

// Options draws the scenario for month and returns its menu
func (c *Catalog) Options(month int, rng shared.RandomSource) *Menu {
	menu, err := c.MenuFor(month, c.ScenarioFor(month, rng))
	if err != nil {
		// Every scenario ScenarioFor can return is populated by NewCatalog
		panic(err)
	}
	return menu
}

// builtinChoices returns the fixed choices of a scenario
func builtinChoices(s Scenario) []Choice {
	switch s {
	case ScenarioContractorTier:
		return []Choice{
			{Key: "a", Option: Option{Description: "Cheap contractor (high risk)", Cost: -5_000_000_000, Quality: -5, Safety: -5}},
			{Key: "b", Option: Option{Description: "Mid-quality contractor (standard)"}},
			{Key: "c", Option: Option{Description: "Premium contractor (guaranteed quality)", Cost: 5_000_000_000, Quality: 5, Safety: 5, Morale: 5, Client: 5, Time: -0.1}},
		}
	case ScenarioMaterialSourcing:
		return []Choice{
			{Key: "a", Option: Option{Description: "High-quality imported stone (expensive)", Cost: -8_000_000_000, Quality: 10, Client: 10, Time: 0.2}},
			{Key: "b", Option: Option{Description: "Premium domestic stone (local standard)", Cost: -3_000_000_000, Quality: 5, Client: 5}},
			{Key: "c", Option: Option{Description: "Cheaper travertine (savings)", Quality: -10, Client: -10, Morale: -5}},
		}
	case ScenarioScopeChange:
		return []Choice{
			{Key: "a", Option: Option{Description: "Accept all changes (keep the client satisfied)", Cost: -15_000_000_000, Time: 1.5, Client: 15, Quality: 5, Morale: 10}},
			{Key: "b", Option: Option{Description: "Negotiate a simpler version", Cost: -8_000_000_000, Time: 0.5, Client: 5}},
			{Key: "c", Option: Option{Description: "Reject the changes outright", Client: -15, Morale: -5}},
		}
	case ScenarioScheduleRecovery:
		return []Choice{
			{Key: "a", Option: Option{Description: "Recover the delay with overtime (crashing)", Cost: -4_000_000_000, Time: -0.25, Client: 5, Safety: -5, Morale: -10, Quality: -5}},
			{Key: "b", Option: Option{Description: "Temporary cheaper materials to speed up", Time: -0.5, Morale: -5, Quality: -10}},
			{Key: "c", Option: Option{Description: "Keep quality and accept the delay", Morale: 5, Quality: 5}},
		}
	case ScenarioRoutine:
		return []Choice{
			{Key: "a", Option: Option{Description: "Cut cost with cheaper domestic materials", Cost: 2_000_000_000, Quality: -5, Safety: -2, Morale: -5, Client: -5}},
			{Key: "b", Option: Option{Description: "Invest in safety and HSE training", Cost: -1_000_000_000, Safety: 5, Morale: 5}},
			{Key: "c", Option: Option{Description: "Standard execution (default)"}},
		}
	}
	return nil
}
