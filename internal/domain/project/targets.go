package project

import (
	"fmt"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// Default project parameters
const (
	DefaultScopeTarget     = 18
	DefaultTimeTarget      = 18.0
	DefaultBudgetTarget    = int64(120_000_000_000)
	DefaultBaseMonthlyCost = int64(6_000_000_000)
	DefaultBudgetFloor     = int64(-20_000_000_000)

	DefaultQuality            = 90.0
	DefaultSafety             = 90.0
	DefaultClientSatisfaction = 80.0
	DefaultMorale             = 80.0
)

// Indicator bounds
const (
	IndicatorMin    = 70.0
	IndicatorMax    = 100.0
	MoraleMin       = 50.0
	MoraleMax       = 100.0
	RiskSafetyFloor = 50.0
)

// Targets holds the fixed parameters a run starts from. They never change
// during a run.
type Targets struct {
	ScopeTarget     int
	TimeTarget      float64
	BudgetTarget    int64
	BaseMonthlyCost int64
	BudgetFloor     int64

	InitialQuality            float64
	InitialSafety             float64
	InitialClientSatisfaction float64
	InitialMorale             float64
}

// DefaultTargets returns the standard 18-month, 120 billion project
func DefaultTargets() Targets {
	return Targets{
		ScopeTarget:               DefaultScopeTarget,
		TimeTarget:                DefaultTimeTarget,
		BudgetTarget:              DefaultBudgetTarget,
		BaseMonthlyCost:           DefaultBaseMonthlyCost,
		BudgetFloor:               DefaultBudgetFloor,
		InitialQuality:            DefaultQuality,
		InitialSafety:             DefaultSafety,
		InitialClientSatisfaction: DefaultClientSatisfaction,
		InitialMorale:             DefaultMorale,
	}
}

// Validate checks the targets are usable for a run
func (t Targets) Validate() error {
	if t.ScopeTarget < 1 || t.ScopeTarget > PhaseCount {
		return shared.NewValidationError("scope_target", fmt.Sprintf("must be between 1 and %d", PhaseCount))
	}
	if t.TimeTarget <= 0 {
		return shared.NewValidationError("time_target", "must be positive")
	}
	if t.BudgetTarget <= 0 {
		return shared.NewValidationError("budget_target", "must be positive")
	}
	if t.BaseMonthlyCost < 0 {
		return shared.NewValidationError("base_monthly_cost", "cannot be negative")
	}
	if t.BudgetFloor >= t.BudgetTarget {
		return shared.NewValidationError("budget_floor", "must be below the budget target")
	}
	return nil
}

// Billions converts a currency amount to billions for display
func Billions(amount int64) float64 {
	return float64(amount) / 1_000_000_000
}
