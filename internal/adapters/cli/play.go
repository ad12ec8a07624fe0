package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/game/commands"
	"github.com/andrescamacho/construction-sim/internal/application/game/queries"
	"github.com/andrescamacho/construction-sim/internal/domain/project"
)

// NewPlayCommand creates the interactive play command
func NewPlayCommand() *cobra.Command {
	var (
		seed     int64
		logLines int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the simulation interactively",
		Long: `Start a new project and play it month by month.

Type the letter of an option to apply it. Type r to restart with a fresh
project and q to quit. The log shows the most recent entries first.

Examples:
  construction-sim play
  construction-sim play --seed 42 --log-lines 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			startSeed := cfg.Game.SeedOrNil()
			if cmd.Flags().Changed("seed") {
				startSeed = &seed
			}

			p := &player{
				mediator: a.mediator,
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				render:   NewRenderer(cmd.OutOrStdout(), !noColor),
				logLines: logLines,
			}
			return p.Play(a.Context(cmd.Context()), startSeed)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: game.seed from config, else the clock)")
	cmd.Flags().IntVar(&logLines, "log-lines", 12, "Log entries shown each month (0 shows all)")

	return cmd
}

// player drives one interactive session over a line-oriented terminal
type player struct {
	mediator common.Mediator
	in       *bufio.Scanner
	out      io.Writer
	render   *Renderer
	logLines int
}

// Play runs until the user quits or input ends. The session is removed
// from the store on the way out.
func (p *player) Play(ctx context.Context, seed *int64) (err error) {
	resp, err := p.mediator.Send(ctx, &commands.StartGameCommand{Seed: seed})
	if err != nil {
		return err
	}
	started := resp.(*commands.StartGameResponse)
	sessionID := started.SessionID
	fmt.Fprintf(p.out, "New project started (seed %d)\n", started.Seed)
	defer func() {
		_, endErr := p.mediator.Send(context.WithoutCancel(ctx), &commands.EndGameCommand{SessionID: sessionID})
		if endErr != nil && err == nil {
			err = endErr
		}
	}()

	for {
		statusResp, err := p.mediator.Send(ctx, &queries.GetProjectStatusQuery{SessionID: sessionID})
		if err != nil {
			return err
		}
		status := statusResp.(*queries.GetProjectStatusResponse)
		p.render.Dashboard(status.Snapshot)

		if status.GameOver {
			restart, err := p.finish(ctx, sessionID)
			if err != nil || !restart {
				return err
			}
			if err := p.restart(ctx, sessionID); err != nil {
				return err
			}
			continue
		}

		optionsResp, err := p.mediator.Send(ctx, &queries.GetDecisionOptionsQuery{SessionID: sessionID})
		if err != nil {
			return err
		}
		menu := optionsResp.(*queries.GetDecisionOptionsResponse).Menu
		p.render.Menu(menu, challengePhase(status.Snapshot))
		p.render.Log(status.Snapshot.Log, p.logLines)

		input, ok := p.prompt("\nYour choice (r restart, q quit): ")
		if !ok {
			return nil
		}

		switch {
		case isCommand(input, "q"):
			return nil
		case isCommand(input, "r"):
			if err := p.restart(ctx, sessionID); err != nil {
				return err
			}
		case input == "":
			continue
		default:
			// Option keys go to the engine verbatim; "A" is not option "a"
			decResp, err := p.mediator.Send(ctx, &commands.MakeDecisionCommand{SessionID: sessionID, Key: input})
			if err != nil {
				return err
			}
			if decResp.(*commands.MakeDecisionResponse).InvalidKey {
				fmt.Fprintf(p.out, "'%s' is not an option this month.\n", input)
			}
		}
	}
}

// challengePhase names the phase scheduled for the current month. After a
// month lost to low morale it runs ahead of the phase in progress.
func challengePhase(snapshot project.Snapshot) string {
	return project.PhaseName(snapshot.Month - 1)
}

// isCommand matches the single-letter play commands in either case
func isCommand(input, command string) bool {
	return strings.EqualFold(input, command)
}

// finish shows the final result and asks whether to play again
func (p *player) finish(ctx context.Context, sessionID string) (bool, error) {
	resp, err := p.mediator.Send(ctx, &queries.GetFinalScoreQuery{SessionID: sessionID})
	if err != nil {
		return false, err
	}
	final := resp.(*queries.GetFinalScoreResponse)
	p.render.Final(final.Ending, final.Score, final.Log)

	for {
		input, ok := p.prompt("\nPlay again? (r restart, q quit): ")
		if !ok || isCommand(input, "q") {
			return false, nil
		}
		if isCommand(input, "r") {
			return true, nil
		}
	}
}

func (p *player) restart(ctx context.Context, sessionID string) error {
	resp, err := p.mediator.Send(ctx, &commands.RestartGameCommand{SessionID: sessionID})
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "\nProject restarted (seed %d)\n", resp.(*commands.RestartGameResponse).Seed)
	return nil
}

// prompt reads one trimmed line. ok is false once input is exhausted.
func (p *player) prompt(text string) (string, bool) {
	fmt.Fprint(p.out, text)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}
