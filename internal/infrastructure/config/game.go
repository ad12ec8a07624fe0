package config

import "github.com/andrescamacho/construction-sim/internal/domain/project"

// GameConfig holds the project targets and run options
type GameConfig struct {
	// Number of phases to deliver
	ScopeTarget int `mapstructure:"scope_target" validate:"min=1,max=18"`

	// Planned duration in months
	TimeTarget float64 `mapstructure:"time_target" validate:"gt=0"`

	// Budget in Toman
	BudgetTarget int64 `mapstructure:"budget_target" validate:"gt=0"`

	// Spent every monthly cycle
	BaseMonthlyCost int64 `mapstructure:"base_monthly_cost" validate:"min=0"`

	// The run is halted once the budget reaches this value. Nil means the
	// built-in floor; zero is a valid floor.
	BudgetFloor *int64 `mapstructure:"budget_floor"`

	InitialQuality            float64 `mapstructure:"initial_quality" validate:"min=70,max=100"`
	InitialSafety             float64 `mapstructure:"initial_safety" validate:"min=70,max=100"`
	InitialClientSatisfaction float64 `mapstructure:"initial_client_satisfaction" validate:"min=70,max=100"`
	InitialMorale             float64 `mapstructure:"initial_morale" validate:"min=50,max=100"`

	// Random seed; nil derives a seed from the clock for every run
	Seed *int64 `mapstructure:"seed"`

	// Optional YAML file replacing the built-in risk table
	RiskCatalog string `mapstructure:"risk_catalog" validate:"omitempty,file"`
}

// Targets converts the configuration into project targets
func (g GameConfig) Targets() project.Targets {
	return project.Targets{
		ScopeTarget:               g.ScopeTarget,
		TimeTarget:                g.TimeTarget,
		BudgetTarget:              g.BudgetTarget,
		BaseMonthlyCost:           g.BaseMonthlyCost,
		BudgetFloor:               g.budgetFloor(),
		InitialQuality:            g.InitialQuality,
		InitialSafety:             g.InitialSafety,
		InitialClientSatisfaction: g.InitialClientSatisfaction,
		InitialMorale:             g.InitialMorale,
	}
}

// SeedOrNil returns a copy of the configured seed, or nil when seeding is
// left to the clock
func (g GameConfig) SeedOrNil() *int64 {
	if g.Seed == nil {
		return nil
	}
	seed := *g.Seed
	return &seed
}

func (g GameConfig) budgetFloor() int64 {
	if g.BudgetFloor == nil {
		return project.DefaultBudgetFloor
	}
	return *g.BudgetFloor
}
