package experiments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"
	"tictactoe/meta"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidSweep = errors.New("invalid sweep config")

// SweepConfig describes the training lengths to evaluate: 0, Step, 2*Step, ... up to MaxEpisodes.
type SweepConfig struct {
	MaxEpisodes int
	Step        int
	Games       int // Evaluation games per checkpoint
	Workers     int // Checkpoints evaluated at once, 0 for no limit
	Seed        uint64
	Learner     learner.Config
}

func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		MaxEpisodes: meta.SWEEP_MAX,
		Step:        meta.SWEEP_STEP,
		Games:       meta.GAMES,
		Learner:     learner.DefaultConfig(),
	}
}

func (c SweepConfig) Validate() error {
	if c.MaxEpisodes < 0 {
		return fmt.Errorf("%w: max episodes %d is negative", ErrInvalidSweep, c.MaxEpisodes)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step %d must be positive", ErrInvalidSweep, c.Step)
	}
	if c.Games <= 0 {
		return fmt.Errorf("%w: games %d must be positive", ErrInvalidSweep, c.Games)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidSweep, c.Workers)
	}
	return c.Learner.Validate()
}

// Checkpoints lists the episode counts of the sweep in increasing order.
func (c SweepConfig) Checkpoints() []int {
	episodes := []int{}
	for n := 0; n <= c.MaxEpisodes; n += c.Step {
		episodes = append(episodes, n)
	}
	return episodes
}

// Sweep trains a fresh learner per checkpoint and evaluates its greedy policy as X
// against a fresh searcher playing O. Checkpoint i is seeded with Seed+i, nothing
// is shared between checkpoints, so they run concurrently.
func Sweep(ctx context.Context, config SweepConfig) ([]metrics.Checkpoint, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	episodes := config.Checkpoints()
	checkpoints := make([]metrics.Checkpoint, len(episodes))

	g, ctx := errgroup.WithContext(ctx)
	if config.Workers > 0 {
		g.SetLimit(config.Workers)
	}

	for i, n := range episodes {
		g.Go(func() error {
			checkpoint, err := runCheckpoint(ctx, config, config.Seed+uint64(i), n)
			if err != nil {
				return err
			}
			checkpoints[i] = checkpoint
			log.Info().Msgf("checkpoint %d of %d: %d episodes, draw rate %.3f",
				i+1, len(episodes), n, checkpoint.DrawRate())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return checkpoints, nil
}

func runCheckpoint(ctx context.Context, config SweepConfig, seed uint64, episodes int) (metrics.Checkpoint, error) {
	start := time.Now()
	q, err := learner.NewQLearner(config.Learner, learner.WithSeed(seed))
	if err != nil {
		return metrics.Checkpoint{}, err
	}
	if err := trainContext(ctx, q, episodes); err != nil {
		return metrics.Checkpoint{}, err
	}

	// Checkpoints keep no move records
	solver := searcher.NewMinimax(game.PlayerO, searcher.WithMetrics(metrics.NewDummyCollector()))
	result := RunMatch(agent.NewEvaluationAgent(q), agent.NewSearchAgent(solver), config.Games)

	return metrics.Checkpoint{
		Episodes:  episodes,
		TableSize: q.Table().Len(),
		Games:     result.Games,
		Draws:     result.Draws,
		Wins:      result.WinsA,
		Losses:    result.WinsB,
		Duration:  time.Since(start),
	}, nil
}

// RunSweepExperiment runs the sweep, stores checkpoints.csv and draw_rate.html
// under root/sweep and prints the bar report to out.
func RunSweepExperiment(ctx context.Context, config SweepConfig, root string, out io.Writer) ([]metrics.Checkpoint, error) {
	log.Info().Msgf("starting sweep experiment up to %d episodes...", config.MaxEpisodes)
	checkpoints, err := Sweep(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to run sweep: %w", err)
	}
	log.Info().Msg("completed sweep experiment")

	writer, err := metrics.NewWriter(root, "sweep")
	if err != nil {
		return checkpoints, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteCheckpoints(checkpoints)
	if err != nil {
		return checkpoints, fmt.Errorf("failed to write checkpoints: %w", err)
	}
	log.Info().Msg("stored checkpoints")

	f, err := os.Create(writer.Path("draw_rate.html"))
	if err != nil {
		return checkpoints, fmt.Errorf("failed to create chart: %w", err)
	}
	defer f.Close()
	if err := RenderChart(f, checkpoints); err != nil {
		return checkpoints, err
	}
	log.Info().Str("path", writer.Path("draw_rate.html")).Msg("stored chart")

	if err := RenderBars(out, checkpoints); err != nil {
		return checkpoints, err
	}
	return checkpoints, nil
}
