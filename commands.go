package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"
	"tictactoe/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
	seed       uint64
	config     config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Self-play Q-learning and exhaustive minimax for tic-tac-toe",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", "", "YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&o.seed, "seed", 0, "Base seed of every random source")

	rootCmd.AddCommand(newTrainCmd(o), newMatchCmd(o), newSweepCmd(o), newServeCmd(o))
	return rootCmd
}

// load reads the config and applies root flags. Subcommands validate after their own overrides.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Read(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = o.seed
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: log level: %w", config.ErrInvalidConfig, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})

	o.config = cfg
	return nil
}

func newTrainCmd(o *options) *cobra.Command {
	var episodes, games int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a learner by self-play and evaluate it as X against minimax",
		RunE: func(cmd *cobra.Command, args []string) error {
			override(cmd, "episodes", episodes, &o.config.Training.Episodes)
			override(cmd, "games", games, &o.config.Evaluation.Games)
			if err := o.config.Validate(); err != nil {
				return err
			}

			q, err := trainLearner(o.config)
			if err != nil {
				return err
			}
			result := experiments.RunMatch(agent.NewEvaluationAgent(q), searchAgent(game.PlayerO), o.config.Evaluation.Games)
			fmt.Fprintf(cmd.OutOrStdout(), "Trained for %d episodes, %d table entries\n", o.config.Training.Episodes, q.Table().Len())
			printResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().IntVar(&episodes, "episodes", 0, "Self-play episodes")
	cmd.Flags().IntVar(&games, "games", 0, "Evaluation games against minimax")
	return cmd
}

func newMatchCmd(o *options) *cobra.Command {
	var x, oKind, remoteURL string
	var episodes, games int
	var record bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play games between two agents: learner, explorer, search, random or remote",
		RunE: func(cmd *cobra.Command, args []string) error {
			override(cmd, "episodes", episodes, &o.config.Training.Episodes)
			override(cmd, "games", games, &o.config.Evaluation.Games)
			if err := o.config.Validate(); err != nil {
				return err
			}

			a, err := buildAgent(x, game.PlayerX, o.config, remoteURL)
			if err != nil {
				return err
			}
			b, err := buildAgent(oKind, game.PlayerO, o.config, remoteURL)
			if err != nil {
				return err
			}

			var result experiments.MatchResult
			if record {
				result, err = experiments.RunMatchExperiment(o.config.Output.Dir, "match", a, b, o.config.Evaluation.Games)
				if err != nil {
					return err
				}
			} else {
				result = experiments.RunMatch(a, b, o.config.Evaluation.Games)
			}
			printResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&x, "x", "learner", "Agent playing X")
	cmd.Flags().StringVar(&oKind, "o", "search", "Agent playing O")
	cmd.Flags().StringVar(&remoteURL, "remote-url", "http://localhost:8080", "Agent server queried by remote agents")
	cmd.Flags().IntVar(&episodes, "episodes", 0, "Self-play episodes for learner agents")
	cmd.Flags().IntVar(&games, "games", 0, "Games to play")
	cmd.Flags().BoolVar(&record, "record", false, "Store game and move records as CSV")
	return cmd
}

func newSweepCmd(o *options) *cobra.Command {
	var maxEpisodes, step, workers int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate the draw rate against minimax over increasing training lengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			override(cmd, "max", maxEpisodes, &o.config.Sweep.MaxEpisodes)
			override(cmd, "step", step, &o.config.Sweep.Step)
			override(cmd, "workers", workers, &o.config.Sweep.Workers)
			if err := o.config.Validate(); err != nil {
				return err
			}
			sweep := o.config.SweepConfig()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			_, err := experiments.RunSweepExperiment(ctx, sweep, o.config.Output.Dir, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().IntVar(&maxEpisodes, "max", 0, "Largest training length")
	cmd.Flags().IntVar(&step, "step", 0, "Training length between checkpoints")
	cmd.Flags().IntVar(&workers, "workers", 0, "Checkpoints evaluated at once, 0 for no limit")
	return cmd
}

func newServeCmd(o *options) *cobra.Command {
	var addr, kind, side string
	var episodes int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve best moves of an agent over HTTP at POST /findmove",
		RunE: func(cmd *cobra.Command, args []string) error {
			override(cmd, "addr", addr, &o.config.Server.Addr)
			override(cmd, "episodes", episodes, &o.config.Training.Episodes)
			if err := o.config.Validate(); err != nil {
				return err
			}

			mark, err := parseSide(side)
			if err != nil {
				return err
			}
			a, err := buildAgent(kind, mark, o.config, "")
			if err != nil {
				return err
			}
			return agent.StartAgentServer(o.config.Server.Addr, a, game.NewStandardRules())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address")
	cmd.Flags().StringVar(&kind, "agent", "learner", "Agent to serve: learner, search or random")
	cmd.Flags().StringVar(&side, "side", "O", "Side of a search agent")
	cmd.Flags().IntVar(&episodes, "episodes", 0, "Self-play episodes for a learner agent")
	return cmd
}

func buildAgent(kind string, side game.Mark, cfg config.Config, remoteURL string) (agent.Agent, error) {
	switch kind {
	case "learner", "explorer":
		q, err := trainLearner(cfg)
		if err != nil {
			return nil, err
		}
		if kind == "explorer" {
			return agent.NewExploringAgent(q), nil
		}
		return agent.NewEvaluationAgent(q), nil
	case "search":
		return searchAgent(side), nil
	case "random":
		return agent.NewRandomAgent(cfg.Seed + uint64(side)), nil
	case "remote":
		return agent.NewRemoteAgent(remoteURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown agent %q", kind)
	}
}

func trainLearner(cfg config.Config) (*learner.QLearner, error) {
	episodes := cfg.Training.Episodes
	q, err := learner.NewQLearner(cfg.Learner, learner.WithSeed(cfg.Seed))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	experiments.Train(q, episodes)
	log.Info().Int("episodes", episodes).Int("table_size", q.Table().Len()).
		Dur("duration", time.Since(start)).Msg("trained learner")
	return q, nil
}

func searchAgent(side game.Mark) agent.Agent {
	return agent.NewSearchAgent(searcher.NewMinimax(side, searcher.WithMetrics(metrics.NewCollector())))
}

func parseSide(side string) (game.Mark, error) {
	runes := []rune(side)
	if len(runes) == 1 {
		if mark, ok := game.ParseMark(runes[0]); ok && mark != game.Empty {
			return mark, nil
		}
	}
	return game.Empty, fmt.Errorf("side must be X or O, got %q", side)
}

func printResult(cmd *cobra.Command, result experiments.MatchResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "Draws: %d/%d (%.1f%%), X wins: %d, O wins: %d\n",
		result.Draws, result.Games, result.DrawRate()*100, result.WinsA, result.WinsB)
}

// override replaces the configured value when flag was set explicitly.
func override[T any](cmd *cobra.Command, flag string, value T, configured *T) {
	if cmd.Flags().Changed(flag) {
		*configured = value
	}
}
