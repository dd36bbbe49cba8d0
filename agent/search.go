package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

type searchAgent struct {
	m *searcher.Minimax
}

// NewSearchAgent returns an agent playing the optimal move for the searcher's side.
func NewSearchAgent(m *searcher.Minimax) Agent {
	return searchAgent{m: m}
}

func (a searchAgent) FindMove(board game.Board, moves []int) (int, metrics.SearchMetric) {
	move := a.m.ChooseAction(board, moves)
	return move, a.m.Metrics()
}

func (a searchAgent) Name() string {
	return "search"
}

func (a searchAgent) Side() game.Mark {
	return a.m.Side()
}
