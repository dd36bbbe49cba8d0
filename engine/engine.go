package engine

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Engine interface {
	// Run plays a game till there's a winner or no empty cell is left
	Run() (winner game.Mark, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Observer receives every transition right after it is played.
type Observer func(t game.Transition)
