package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pollscape/internal/config"
	"pollscape/internal/logging"
	"pollscape/internal/polls"
	"pollscape/internal/session"
	"pollscape/internal/views"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose       bool
	pollDataPath  string
	seed          int64
	scenarioCount int

	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "pollscape",
	Short: "pollscape explores Monte-Carlo scenarios of a German federal election poll",
	Long: `pollscape draws plausible election outcomes from poll averages and their
confidence intervals, applies the 5% hurdle and arranges the scenarios by
leader, lead margin, hurdle risk or coalition majority.

Without a subcommand it runs as an MCP server on stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		applyFlagOverrides(cmd)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("pollscape starting")
	},
	RunE: runMCP,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&pollDataPath, "poll-data", "", "JSON or YAML poll dataset (default: embedded dataset)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for reproducible scenarios (0 = random)")
	rootCmd.PersistentFlags().IntVarP(&scenarioCount, "scenarios", "n", 0, "number of scenarios (100 or 1000)")
}

func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("poll-data") {
		cfg.PollDataPath = pollDataPath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("scenarios") {
		cfg.ScenarioCount = scenarioCount
	}
}

func loadParties() ([]polls.PartyPoll, error) {
	if cfg.PollDataPath == "" {
		return polls.Default()
	}
	log.Info().Str("path", cfg.PollDataPath).Msg("Loading poll dataset")
	return polls.Load(cfg.PollDataPath)
}

func sessionOptions(task views.Task, variant views.Variant) session.Options {
	return session.Options{
		ScenarioCount: cfg.ScenarioCount,
		Seed:          cfg.Seed,
		TotalSeats:    cfg.TotalSeats,
		Task:          task,
		Variant:       variant,
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
