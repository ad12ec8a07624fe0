package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "construction-sim",
		Short: "Construction project management simulation",
		Long: `Construction Sim is a turn-based simulation of an 18-month residential
building project. Each month you pick one option, then the month plays out:
risks may strike, money is spent and a phase is completed or delayed.
The run ends when every phase is delivered, the schedule runs out or the
budget collapses, and is scored with a weighted KPI.

Examples:
  construction-sim play
  construction-sim play --seed 42
  construction-sim simulate --strategy premium --runs 20
  construction-sim catalog risks --yaml > risks.yaml
  construction-sim config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored log output")

	// Add command groups
	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command. Cancelling ctx stops a running game.
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
