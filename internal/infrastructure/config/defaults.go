package config

import (
	"time"

	"github.com/andrescamacho/construction-sim/internal/domain/project"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Game defaults
	targets := project.DefaultTargets()
	if cfg.Game.ScopeTarget == 0 {
		cfg.Game.ScopeTarget = targets.ScopeTarget
	}
	if cfg.Game.TimeTarget == 0 {
		cfg.Game.TimeTarget = targets.TimeTarget
	}
	if cfg.Game.BudgetTarget == 0 {
		cfg.Game.BudgetTarget = targets.BudgetTarget
	}
	if cfg.Game.BaseMonthlyCost == 0 {
		cfg.Game.BaseMonthlyCost = targets.BaseMonthlyCost
	}
	if cfg.Game.BudgetFloor == nil {
		floor := targets.BudgetFloor
		cfg.Game.BudgetFloor = &floor
	}
	if cfg.Game.InitialQuality == 0 {
		cfg.Game.InitialQuality = targets.InitialQuality
	}
	if cfg.Game.InitialSafety == 0 {
		cfg.Game.InitialSafety = targets.InitialSafety
	}
	if cfg.Game.InitialClientSatisfaction == 0 {
		cfg.Game.InitialClientSatisfaction = targets.InitialClientSatisfaction
	}
	if cfg.Game.InitialMorale == 0 {
		cfg.Game.InitialMorale = targets.InitialMorale
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = ":memory:"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		// Every connection to ":memory:" opens a separate database
		cfg.Database.Pool.MaxOpen = 1
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 1
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		// Operational logs share the terminal with the game
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ShutdownTimeout == 0 {
		cfg.Metrics.ShutdownTimeout = 5 * time.Second
	}

	// Simulation defaults
	if cfg.Simulation.Strategy == "" {
		cfg.Simulation.Strategy = StrategyStandard
	}
	if cfg.Simulation.Burst == 0 {
		cfg.Simulation.Burst = 1
	}
}
