package searcher

import "tictactoe/game"

// Score of a win reached right after the root move; every extra ply costs one point.
const WinScore = 10

const DrawScore = 0

// Searcher picks a move for the board given its legal actions.
type Searcher interface {
	ChooseAction(board game.Board, actions []int) int
}

func terminalScore(winner, side game.Mark, depth int) int {
	switch winner {
	case side:
		return WinScore - depth
	case side.Opponent():
		return depth - WinScore
	default:
		return DrawScore
	}
}
