package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/pacer/internal/config"
	"github.com/okian/pacer/pkg/logger"
)

// cli holds the state shared by every subcommand after setup.
type cli struct {
	configPath string
	colorMode  string
	live       bool
	tint       bool

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "pacer",
		Short: "Time management coach for bullet chess clocks.",
		Long: `pacer samples both clocks of a bullet game, works out who is ahead on
time, how urgent the situation is and how long the next move may take, and
rates every completed move against that budget.

Clock sources:
  replay    play back a recorded YAML script
  watch     read "user opp [moves]" lines from stdin
  simulate  generate a synthetic game and play it

Configuration is layered: defaults, PACER_ENV_FILE, PACER_CONFIG (YAML),
then PACER_* environment variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (overrides PACER_CONFIG)")
	root.PersistentFlags().StringVar(&c.colorMode, "color", "auto", "Colored output: auto, yes or no")
	root.PersistentFlags().BoolVar(&c.live, "live", false, "Redraw a single status line in place")
	root.PersistentFlags().BoolVar(&c.tint, "tint", false, "Append suggested board square colors to each line")

	root.AddCommand(newReplayCmd(c), newWatchCmd(c), newSimulateCmd(c), newBudgetCmd(c))
	return root
}

// setup initialises logging and loads configuration before any subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := logger.InitWithWriter(cmd.ErrOrStderr(), logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if c.configPath != "" {
		if err := os.Setenv(config.EnvConfig, c.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvConfig, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	if err := logger.InitWithWriter(cmd.ErrOrStderr(), logger.Format(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

func (c *cli) useColor() bool {
	switch strings.ToLower(c.colorMode) {
	case "yes", "true", "1", "always":
		return true
	case "no", "false", "0", "never":
		return false
	default:
		return !color.NoColor
	}
}
