package agent

import (
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"
)

type exploringAgent struct {
	q *learner.QLearner
}

// NewExploringAgent returns an epsilon-greedy agent for self-play during training.
// Learning from the resulting transitions is left to the caller.
func NewExploringAgent(q *learner.QLearner) Agent {
	return exploringAgent{q: q}
}

func (a exploringAgent) FindMove(board game.Board, moves []int) (int, metrics.SearchMetric) {
	start := time.Now()
	move := a.q.ChooseAction(board.Key(), moves)
	return move, metrics.SearchMetric{Duration: time.Since(start)}
}

func (a exploringAgent) Name() string {
	return "explorer"
}
