package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent picking uniformly among legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(board game.Board, moves []int) (int, metrics.SearchMetric) {
	if len(moves) == 0 {
		panic("cannot choose action: no legal actions")
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}

func (a *randomAgent) Name() string {
	return "random"
}
