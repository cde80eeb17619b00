package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/pacer/internal/adapters/present"
	"github.com/okian/pacer/internal/adapters/reader"
	"github.com/okian/pacer/internal/app"
	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/internal/simulate"
	"github.com/okian/pacer/pkg/logger"
)

const scriptFilePermission = 0o644

func newReplayCmd(c *cli) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Play back a recorded clock script.",
		Long: `Replay a YAML clock script one sample per tick.

The script's poll_interval_ms is used unless --interval is given.

Examples:
  pacer replay testdata/game.yaml
  pacer replay --interval 5ms --color no game.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := reader.LoadScript(args[0])
			if err != nil {
				return err
			}
			tick := c.cfg.PollInterval()
			if script.PollIntervalMS > 0 {
				tick = time.Duration(script.PollIntervalMS) * time.Millisecond
			}
			if interval > 0 {
				tick = interval
			}
			c.log.Info(cmd.Context(), "replaying script",
				logger.String("path", args[0]),
				logger.Int("ticks", script.Ticks()),
				logger.Duration("interval", tick),
			)
			return c.run(cmd.Context(), cmd.OutOrStdout(), reader.NewScriptReader(script), tick)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "Override the tick interval")
	return cmd
}

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Read clock lines from stdin.",
		Long: `Sample the latest "user opp [moves]" line from stdin every poll interval.

Use "-" for a clock that is not visible. Blank lines and lines starting
with # are ignored. The moves column is the length of the move list; a line
without it leaves new-game detection untouched.

Examples:
  my-screen-reader | pacer watch --live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd.Context(), cmd.OutOrStdout(), reader.NewLineReader(cmd.InOrStdin()), c.cfg.PollInterval())
		},
	}
}

func newSimulateCmd(c *cli) *cobra.Command {
	var (
		moves    int
		games    int
		base     time.Duration
		seed     uint64
		premove  float64
		out      string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate a synthetic game and play it.",
		Long: `Generate a reproducible bullet game in which both sides pace themselves
around the budget, then play it through the coach.

With --out the script is written as YAML instead of being played.

Examples:
  pacer simulate --moves 40 --seed 3
  pacer simulate --games 2 --out game.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			step := c.cfg.PollInterval()
			gen := simulate.New(
				simulate.WithMoves(moves),
				simulate.WithGames(games),
				simulate.WithBaseTime(base),
				simulate.WithSeed(seed),
				simulate.WithPremoveChance(premove),
				simulate.WithInterval(step),
				simulate.WithBudgetCalculator(app.BudgetFromConfig(c.cfg)),
				simulate.WithLogger(c.log),
			)
			script, err := gen.Generate(cmd.Context())
			if err != nil {
				return err
			}

			if out != "" {
				return writeScript(script, out, cmd)
			}

			tick := step
			if interval > 0 {
				tick = interval
			}
			return c.run(cmd.Context(), cmd.OutOrStdout(), reader.NewScriptReader(script), tick)
		},
	}
	cmd.Flags().IntVar(&moves, "moves", 30, "Full moves per game")
	cmd.Flags().IntVar(&games, "games", 1, "Games played back to back")
	cmd.Flags().DurationVar(&base, "base", time.Minute, "Starting time on each clock")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().Float64Var(&premove, "premove", 0.1, "Probability of an instant move")
	cmd.Flags().StringVar(&out, "out", "", "Write the script to this file (- for stdout) instead of playing it")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Play back faster or slower than the sampling interval")
	return cmd
}

func writeScript(s *reader.Script, path string, cmd *cobra.Command) error {
	if path == "-" {
		return s.Encode(cmd.OutOrStdout())
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, scriptFilePermission)
	if err != nil {
		return fmt.Errorf("create script: %w", err)
	}
	if err := s.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newBudgetCmd(c *cli) *cobra.Command {
	var from, to, step float64

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Print the per-move budget curve.",
		Long: `Print how the per-move allowance shrinks with the remaining time, using
the configured budget model.

Examples:
  pacer budget
  pacer budget --from 180 --step 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points := budget.Steps(from, to, step)
			if len(points) == 0 {
				return fmt.Errorf("empty range: --from %g --to %g --step %g", from, to, step)
			}
			rows := app.BudgetFromConfig(c.cfg).Curve(points)
			return present.BudgetTable(cmd.OutOrStdout(), rows, c.useColor())
		},
	}
	cmd.Flags().Float64Var(&from, "from", 60, "Highest remaining time in seconds")
	cmd.Flags().Float64Var(&to, "to", 0, "Lowest remaining time in seconds")
	cmd.Flags().Float64Var(&step, "step", 5, "Step between rows in seconds")
	return cmd
}
