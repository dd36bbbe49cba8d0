package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Agent interface {
	// FindMove returns an action from moves and performance metrics (if collected) for the decision
	FindMove(board game.Board, moves []int) (int, metrics.SearchMetric)
	Name() string
}

// Sided is implemented by agents that can only play one mark.
type Sided interface {
	Side() game.Mark
}

// CanPlay reports whether a may move for mark.
func CanPlay(a Agent, mark game.Mark) bool {
	sided, ok := a.(Sided)
	return !ok || sided.Side() == mark
}
