package experiments

import (
	"context"
	"fmt"

	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"

	"github.com/rs/zerolog/log"
)

// MatchResult tallies games where agent A always moves first.
type MatchResult struct {
	Games int
	Draws int
	WinsA int
	WinsB int
}

func (r MatchResult) DrawRate() float64 {
	return rate(r.Draws, r.Games)
}

func (r MatchResult) WinRateA() float64 {
	return rate(r.WinsA, r.Games)
}

func (r MatchResult) WinRateB() float64 {
	return rate(r.WinsB, r.Games)
}

func rate(count, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(count) / float64(games)
}

// Train plays episodes of self-play where q chooses with exploration for both
// sides and learns from every move. It returns q for chaining.
func Train(q *learner.QLearner, episodes int) *learner.QLearner {
	e := selfPlayEngine(q)
	for i := 0; i < episodes; i++ {
		e.Run()
	}
	log.Debug().Int("episodes", episodes).Int("table_size", q.Table().Len()).Msg("completed training")
	return q
}

// trainContext is Train stopping between episodes once ctx is done.
func trainContext(ctx context.Context, q *learner.QLearner, episodes int) error {
	e := selfPlayEngine(q)
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training stopped after %d episodes: %w", i, err)
		}
		e.Run()
	}
	log.Debug().Int("episodes", episodes).Int("table_size", q.Table().Len()).Msg("completed training")
	return nil
}

func selfPlayEngine(q *learner.QLearner) *engine.Local {
	explorer := agent.NewExploringAgent(q)
	return engine.LocalEngine([2]agent.Agent{explorer, explorer}, nil, engine.WithObserver(q.Update))
}

// RunMatch plays games between a (X) and b (O). Learners are only read, never updated.
func RunMatch(a, b agent.Agent, games int) MatchResult {
	result, _, _ := playMatch(a, b, games, false)
	return result
}

// RunRecordedMatch is RunMatch keeping every game and move metric.
func RunRecordedMatch(a, b agent.Agent, games int) (MatchResult, []metrics.GameRecord, []metrics.MoveRecord) {
	return playMatch(a, b, games, true)
}

func playMatch(a, b agent.Agent, games int, record bool) (MatchResult, []metrics.GameRecord, []metrics.MoveRecord) {
	e := engine.LocalEngine([2]agent.Agent{a, b}, nil)
	result := MatchResult{Games: games}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for i := 0; i < games; i++ {
		winner, gameMetric, moveMetrics := e.Run()
		switch winner {
		case game.PlayerX:
			result.WinsA++
		case game.PlayerO:
			result.WinsB++
		default:
			result.Draws++
		}

		if !record {
			continue
		}
		gameRecords = append(gameRecords, metrics.GameRecord{ID: i + 1, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}

	log.Debug().Msgf("completed %d games between %s and %s: %+v", games, a.Name(), b.Name(), result)
	return result, gameRecords, moveRecords
}

// RunMatchExperiment plays a recorded match and stores the game and move records under root/name.
func RunMatchExperiment(root, name string, a, b agent.Agent, games int) (MatchResult, error) {
	log.Info().Msgf("starting %s experiment between %s and %s...", name, a.Name(), b.Name())
	result, gameRecords, moveRecords := RunRecordedMatch(a, b, games)
	log.Info().Msgf("completed %s experiment: %d draws, %d wins for %s, %d wins for %s",
		name, result.Draws, result.WinsA, a.Name(), result.WinsB, b.Name())

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, nil
}
