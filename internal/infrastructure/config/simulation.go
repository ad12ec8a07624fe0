package config

import "time"

// Auto-play strategies
const (
	StrategyStandard = "standard"
	StrategyCheap    = "cheap"
	StrategyPremium  = "premium"
	StrategyRandom   = "random"
)

// SimulationConfig holds auto-play settings for the simulate command
type SimulationConfig struct {
	// Strategy used to pick options: standard, cheap, premium, random
	Strategy string `mapstructure:"strategy" validate:"required,oneof=standard cheap premium random"`

	// Minimum wall-clock time between simulated months; 0 runs unpaced
	Pace time.Duration `mapstructure:"pace" validate:"min=0"`

	// Months that may run back to back before pacing applies
	Burst int `mapstructure:"burst" validate:"min=1"`
}
