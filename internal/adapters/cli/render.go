package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrescamacho/construction-sim/internal/domain/decision"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
	"github.com/andrescamacho/construction-sim/internal/domain/scoring"
)

// EntryKind classifies a log entry for styling
type EntryKind int

const (
	EntryPlain EntryKind = iota
	EntryPhase
	EntryDecision
	EntryRisk
	EntryDelay
	EntryCompleted
	EntryError
)

// ClassifyEntry picks the display style of a log entry from its text
func ClassifyEntry(entry string) EntryKind {
	switch {
	case strings.HasPrefix(entry, "RISK EVENT TRIGGERED"), strings.HasPrefix(entry, "GAME OVER"):
		return EntryRisk
	case strings.HasPrefix(entry, "Error:"):
		return EntryError
	case strings.Contains(entry, "WARNING delay"):
		return EntryDelay
	case strings.HasPrefix(entry, "--- Phase"):
		return EntryPhase
	case strings.Contains(entry, "completed on schedule"):
		return EntryCompleted
	case strings.HasPrefix(entry, "Decision for month"):
		return EntryDecision
	default:
		return EntryPlain
	}
}

// Renderer writes the game views as plain text
type Renderer struct {
	out       io.Writer
	useColors bool
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, useColors bool) *Renderer {
	return &Renderer{out: out, useColors: useColors}
}

// Dashboard prints the current indicators
func (r *Renderer) Dashboard(s project.Snapshot) {
	fmt.Fprintf(r.out, "\n=== Month %d | %s ===\n", s.Month, project.PhaseName(s.ScopeProgress))
	fmt.Fprintf(r.out, "  Budget:              %.1f billion Toman\n", project.Billions(s.Budget))
	fmt.Fprintf(r.out, "  Time remaining:      %.1f months\n", s.TimeRemaining)
	fmt.Fprintf(r.out, "  Scope:               %d of %d phases\n", s.ScopeProgress, s.Targets.ScopeTarget)
	fmt.Fprintf(r.out, "  Quality:             %.1f%%\n", s.Quality)
	fmt.Fprintf(r.out, "  Safety:              %.1f%%\n", s.Safety)
	fmt.Fprintf(r.out, "  Client satisfaction: %.1f%%\n", s.ClientSatisfaction)
	fmt.Fprintf(r.out, "  Team morale:         %.1f%%\n", s.Morale)
	if s.CostOfRisk > 0 {
		fmt.Fprintf(r.out, "  Cost of risk:        %.1f billion Toman\n", project.Billions(s.CostOfRisk))
	}
}

// OptionLabel formats one choice with its headline impacts
func OptionLabel(c decision.Choice) string {
	return fmt.Sprintf("%s) %s [cost %+.1f B | time %+.1f M | morale %+.0f]",
		c.Key, c.Option.Description, project.Billions(c.Option.TotalCost()), c.Option.Time, c.Option.Morale)
}

// Menu prints the challenge for the month and its choices
func (r *Renderer) Menu(menu *decision.Menu, phase string) {
	fmt.Fprintf(r.out, "\nChallenge for month %d: %s\n", menu.Month, phase)
	if menu.Notice != "" {
		fmt.Fprintln(r.out, r.paint(EntryRisk, "  "+menu.Notice))
	}
	for _, c := range menu.Choices {
		fmt.Fprintf(r.out, "  %s\n", OptionLabel(c))
	}
}

// Log prints up to limit entries, newest first. limit <= 0 prints them all.
func (r *Renderer) Log(entries []string, limit int) {
	fmt.Fprintln(r.out, "\nProject log (newest first):")
	shown := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		fmt.Fprintln(r.out, "  "+r.paint(ClassifyEntry(entries[i]), entries[i]))
		shown++
	}
}

// EndingMessage describes how a run ended
func EndingMessage(e project.Ending) string {
	switch e {
	case project.EndingCompleted:
		return "Project delivered: every phase is complete."
	case project.EndingBankrupt:
		return "Project halted: the budget is exhausted."
	case project.EndingOutOfTime:
		return "Project stopped: the schedule ran out."
	default:
		return "Project in progress."
	}
}

// Final prints the end-of-run summary followed by the full log in the
// order it was written
func (r *Renderer) Final(ending project.Ending, score scoring.Score, log []string) {
	fmt.Fprintln(r.out, "\n=== Final result ===")
	fmt.Fprintln(r.out, EndingMessage(ending))
	fmt.Fprintf(r.out, "  Final KPI:   %.1f\n", score.KPI)
	fmt.Fprintf(r.out, "  Final time:  %d months\n", score.FinalTime)
	fmt.Fprintf(r.out, "  Final cost:  %.1f billion Toman\n", project.Billions(score.FinalCost))
	fmt.Fprintf(r.out, "  Time score:  %.1f\n", score.TimeScore)
	fmt.Fprintf(r.out, "  Cost score:  %.1f\n", score.CostScore)
	fmt.Fprintf(r.out, "  Quality:     %.1f\n", score.Quality)
	fmt.Fprintf(r.out, "  Safety:      %.1f\n", score.Safety)
	fmt.Fprintf(r.out, "  Client:      %.1f\n", score.Client)

	fmt.Fprintln(r.out, "\nFull project log:")
	for _, entry := range log {
		fmt.Fprintln(r.out, "  "+r.paint(ClassifyEntry(entry), entry))
	}
}

// paint wraps text in the ANSI color of its kind
func (r *Renderer) paint(kind EntryKind, text string) string {
	if !r.useColors {
		return text
	}
	var code string
	switch kind {
	case EntryRisk, EntryError:
		code = "\033[31m" // Red
	case EntryDelay:
		code = "\033[33m" // Yellow
	case EntryPhase:
		code = "\033[36m" // Cyan
	case EntryCompleted:
		code = "\033[32m" // Green
	case EntryDecision:
		code = "\033[1m" // Bold
	default:
		return text
	}
	return code + text + "\033[0m"
}
