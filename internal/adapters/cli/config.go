package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Construction Sim configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CS_* prefix, e.g. CS_GAME_SEED)
2. Config file (config.yaml)
3. Default values

Example:
  construction-sim config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.DefaultConfig()
			}

			fmt.Fprintln(out, "Construction Sim Configuration")
			fmt.Fprintln(out, "==============================")

			g := cfg.Game
			fmt.Fprintln(out, "\nGame:")
			fmt.Fprintf(out, "  Scope target:     %d phases\n", g.ScopeTarget)
			fmt.Fprintf(out, "  Time target:      %.1f months\n", g.TimeTarget)
			fmt.Fprintf(out, "  Budget target:    %.1f billion Toman\n", project.Billions(g.BudgetTarget))
			fmt.Fprintf(out, "  Monthly cost:     %.1f billion Toman\n", project.Billions(g.BaseMonthlyCost))
			fmt.Fprintf(out, "  Budget floor:     %.1f billion Toman\n", project.Billions(g.Targets().BudgetFloor))
			fmt.Fprintf(out, "  Initial levels:   quality %.0f, safety %.0f, client %.0f, morale %.0f\n",
				g.InitialQuality, g.InitialSafety, g.InitialClientSatisfaction, g.InitialMorale)
			if seed := g.SeedOrNil(); seed != nil {
				fmt.Fprintf(out, "  Seed:             %d\n", *seed)
			} else {
				fmt.Fprintf(out, "  Seed:             (from clock)\n")
			}
			if g.RiskCatalog != "" {
				fmt.Fprintf(out, "  Risk catalog:     %s\n", g.RiskCatalog)
			} else {
				fmt.Fprintf(out, "  Risk catalog:     (built-in)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Strategy:         %s\n", cfg.Simulation.Strategy)
			fmt.Fprintf(out, "  Pace:             %s (burst: %d)\n", cfg.Simulation.Pace, cfg.Simulation.Burst)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}
