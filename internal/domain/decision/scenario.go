package decision

import "fmt"

// Scenario identifies which set of choices a month presents
type Scenario string

const (
	// ScenarioContractorTier is the month-1 contractor selection
	ScenarioContractorTier Scenario = "CONTRACTOR_TIER"

	// ScenarioMaterialSourcing is the month-7 facade stone selection
	ScenarioMaterialSourcing Scenario = "MATERIAL_SOURCING"

	// ScenarioScopeChange is the month-9 client change request
	ScenarioScopeChange Scenario = "SCOPE_CHANGE"

	// ScenarioScheduleRecovery is the month-9 schedule recovery choice
	ScenarioScheduleRecovery Scenario = "SCHEDULE_RECOVERY"

	// ScenarioRoutine is the generic monthly menu
	ScenarioRoutine Scenario = "ROUTINE"
)

// AllScenarios returns every scenario
func AllScenarios() []Scenario {
	return []Scenario{
		ScenarioContractorTier,
		ScenarioMaterialSourcing,
		ScenarioScopeChange,
		ScenarioScheduleRecovery,
		ScenarioRoutine,
	}
}

// String returns the string representation of the Scenario
func (s Scenario) String() string {
	return string(s)
}

// IsValid checks if the scenario is known
func (s Scenario) IsValid() bool {
	switch s {
	case ScenarioContractorTier,
		ScenarioMaterialSourcing,
		ScenarioScopeChange,
		ScenarioScheduleRecovery,
		ScenarioRoutine:
		return true
	default:
		return false
	}
}

// ParseScenario parses a string into a Scenario
func ParseScenario(s string) (Scenario, error) {
	sc := Scenario(s)
	if !sc.IsValid() {
		return "", fmt.Errorf("invalid scenario: %s", s)
	}
	return sc, nil
}
