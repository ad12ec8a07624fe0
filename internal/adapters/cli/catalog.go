package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the risk and decision catalogs",
		Long: `Show the tables the simulation runs with.

Examples:
  construction-sim catalog risks
  construction-sim catalog risks --yaml > configs/risks.yaml
  construction-sim catalog decisions`,
	}

	cmd.AddCommand(newCatalogRisksCommand())
	cmd.AddCommand(newCatalogDecisionsCommand())

	return cmd
}

func newCatalogRisksCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "risks",
		Short: "List risk events",
		Long: `List the risk events evaluated each month. When game.risk_catalog is
set the file is loaded, otherwise the built-in table is shown.

With --yaml the catalog is written in the file format game.risk_catalog reads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			catalog := risk.DefaultCatalog()
			if cfg.Game.RiskCatalog != "" {
				catalog, err = risk.LoadCatalogFile(cfg.Game.RiskCatalog, cfg.Game.ScopeTarget)
				if err != nil {
					return err
				}
			}

			if asYAML {
				data, err := risk.MarshalCatalog(catalog)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			printRisks(cmd.OutOrStdout(), catalog)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Write the catalog as YAML")

	return cmd
}

func newCatalogDecisionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decisions",
		Short: "List decision scenarios and their options",
		RunE: func(cmd *cobra.Command, args []string) error {
			printDecisions(cmd.OutOrStdout(), decision.NewCatalog())
			return nil
		},
	}
}

func printRisks(out io.Writer, catalog *risk.Catalog) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tPROBABILITY\tMONTHS\tIMPACTS")
	for _, e := range catalog.Events() {
		fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\t%s\n",
			e.Code(), e.Name(), e.Probability()*100, formatMonths(e.Months()), formatImpacts(e.Impacts()))
	}
	w.Flush()
}

func printDecisions(out io.Writer, catalog *decision.Catalog) {
	months := map[decision.Scenario]string{
		decision.ScenarioContractorTier:   fmt.Sprintf("month %d", decision.ContractorMonth),
		decision.ScenarioMaterialSourcing: fmt.Sprintf("month %d", decision.MaterialMonth),
		decision.ScenarioScopeChange:      fmt.Sprintf("month %d (%.0f%%)", decision.BranchMonth, decision.ScopeChangeOdds*100),
		decision.ScenarioScheduleRecovery: fmt.Sprintf("month %d (%.0f%%)", decision.BranchMonth, (1-decision.ScopeChangeOdds)*100),
		decision.ScenarioRoutine:          "other months",
	}

	for _, scenario := range decision.AllScenarios() {
		menu, err := catalog.MenuFor(0, scenario)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "%s (%s)\n", scenario, months[scenario])
		for _, c := range menu.Choices {
			fmt.Fprintf(out, "  %s\n", OptionLabel(c))
		}
		fmt.Fprintln(out)
	}
}

// formatMonths collapses consecutive months into ranges
func formatMonths(months []int) string {
	var parts []string
	for i := 0; i < len(months); {
		j := i
		for j+1 < len(months) && months[j+1] == months[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, fmt.Sprintf("%d", months[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", months[i], months[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

func formatImpacts(im risk.Impacts) string {
	var parts []string
	if im.Cost != nil {
		parts = append(parts, fmt.Sprintf("cost %.1f B", project.Billions(*im.Cost)))
	}
	if im.Time != nil {
		parts = append(parts, fmt.Sprintf("time %+.2f M", *im.Time))
	}
	if im.Safety != nil {
		parts = append(parts, fmt.Sprintf("safety %+.0f", *im.Safety))
	}
	if im.Morale != nil {
		parts = append(parts, fmt.Sprintf("morale %+.0f", *im.Morale))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
