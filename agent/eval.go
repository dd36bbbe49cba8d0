package agent

import (
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/learner"
)

type evaluationAgent struct {
	q *learner.QLearner
}

// NewEvaluationAgent returns a greedy agent over a learned table for actual game play during evaluation.
// It never updates the table.
func NewEvaluationAgent(q *learner.QLearner) Agent {
	return evaluationAgent{q: q}
}

func (a evaluationAgent) FindMove(board game.Board, moves []int) (int, metrics.SearchMetric) {
	start := time.Now()
	move := a.q.BestAction(board.Key(), moves)
	return move, metrics.SearchMetric{Duration: time.Since(start)}
}

func (a evaluationAgent) Name() string {
	return "learner"
}
