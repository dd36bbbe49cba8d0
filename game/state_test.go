package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRules(t *testing.T) {
	rules := NewStandardRules()

	require.Equal(t, 9, rules.Cells)
	require.Len(t, rules.Lines, 8, "3x3 has three rows, three columns and two diagonals")
	require.Contains(t, rules.Lines, Line{0, 4, 8})
	require.Contains(t, rules.Lines, Line{2, 4, 6})
	require.Contains(t, rules.Lines, Line{1, 4, 7})
}

func TestGridRules(t *testing.T) {
	rules := NewGridRules(4)

	require.Equal(t, 16, rules.Cells)
	require.Len(t, rules.Lines, 10)
	require.Contains(t, rules.Lines, Line{3, 6, 9, 12}, "Should include the anti-diagonal")
	require.Panics(t, func() { NewGridRules(0) })
}

func TestWinnerLineSymmetry(t *testing.T) {
	rules := NewStandardRules()

	for _, line := range rules.Lines {
		for _, mark := range []Mark{PlayerX, PlayerO} {
			board := NewBoard(rules.Cells)
			for _, idx := range line {
				board[idx] = mark
			}
			require.Equal(t, mark, rules.Winner(board), "Full line %v of %s should win", line, mark)

			// Break the line with the opponent's mark
			board[line[len(line)-1]] = mark.Opponent()
			require.Equal(t, Empty, rules.Winner(board), "Broken line %v should not win", line)

			// Break the line with an empty cell
			board[line[len(line)-1]] = Empty
			require.Equal(t, Empty, rules.Winner(board), "Incomplete line %v should not win", line)
		}
	}
}

func TestWinnerIsPure(t *testing.T) {
	board, err := ParseBoard("XXXOO    ")
	require.NoError(t, err)
	before := board.Copy()

	require.Equal(t, PlayerX, Winner(board, NewStandardRules().Lines))
	require.Equal(t, before, board, "Winner should not touch the board")
}

func TestBoard(t *testing.T) {
	t.Run("key round trip", func(t *testing.T) {
		board, err := ParseBoard("X O  O  X")
		require.NoError(t, err)
		require.Equal(t, State("X O  O  X"), board.Key())
		require.Equal(t, []int{1, 3, 4, 6, 7}, board.LegalActions())
	})

	t.Run("rejects unknown marks", func(t *testing.T) {
		_, err := ParseBoard("X?O")
		require.Error(t, err)
	})

	t.Run("identical boards share a key", func(t *testing.T) {
		a, _ := ParseBoard("X   O    ")
		b, _ := ParseBoard("X   O    ")
		rotated, _ := ParseBoard("  X O    ")
		require.Equal(t, a.Key(), b.Key())
		require.NotEqual(t, a.Key(), rotated.Key(), "Symmetric boards stay distinct states")
	})

	t.Run("turn inference", func(t *testing.T) {
		board, _ := ParseBoard("X        ")
		require.Equal(t, PlayerO, board.ToMove())
		require.True(t, board.Reachable())

		board, _ = ParseBoard("XX       ")
		require.False(t, board.Reachable())
	})

	t.Run("renders rows", func(t *testing.T) {
		board, _ := ParseBoard("XO X O  X")
		require.Equal(t, "X | O |  \nX |   | O\n  |   | X", board.String())
	})
}

func TestGameStateReset(t *testing.T) {
	gs := NewGameState(nil)
	gs.Play(4)

	state := gs.Reset()
	require.Equal(t, State("         "), state)
	require.Equal(t, PlayerX, gs.CurrentPlayer)
	require.Len(t, gs.LegalMoves(), 9)
	require.False(t, gs.Terminal())
}

func TestGameStatePlay(t *testing.T) {
	t.Run("alternates players and rewards nothing mid-game", func(t *testing.T) {
		gs := NewGameState(NewStandardRules())

		state, reward, terminal := gs.Play(0)
		require.Equal(t, State("X        "), state)
		require.Equal(t, 0.0, reward)
		require.False(t, terminal)
		require.Equal(t, PlayerO, gs.CurrentPlayer)

		state, _, _ = gs.Play(4)
		require.Equal(t, State("X   O    "), state)
		require.Equal(t, PlayerX, gs.CurrentPlayer)
		require.Equal(t, 2, gs.Moves)
	})

	t.Run("rewards the player completing a line", func(t *testing.T) {
		gs := NewGameState(nil)
		for _, a := range []int{0, 3, 1, 4} {
			gs.Play(a)
		}

		_, reward, terminal := gs.Play(2)
		require.Equal(t, WinReward, reward)
		require.True(t, terminal)
		require.Equal(t, PlayerX, gs.Winner())
		require.False(t, gs.Draw())
	})

	t.Run("last legal move closes the game", func(t *testing.T) {
		gs := NewGameState(nil)
		// X O X / X O O / O X _ : no line, one cell left
		for _, a := range []int{0, 1, 2, 4, 3, 5, 7, 6} {
			_, _, terminal := gs.Play(a)
			require.False(t, terminal)
		}
		require.Equal(t, []int{8}, gs.LegalMoves())

		_, reward, terminal := gs.Play(8)
		require.True(t, terminal, "Filling the board should end the game")
		require.Empty(t, gs.LegalMoves())
		require.Equal(t, 0.0, reward, "Draws carry no reward")
		require.True(t, gs.Draw())
	})

	t.Run("panics on an occupied cell", func(t *testing.T) {
		gs := NewGameState(nil)
		gs.Play(4)
		require.Panics(t, func() { gs.Play(4) })
	})

	t.Run("panics on an out of range cell", func(t *testing.T) {
		gs := NewGameState(nil)
		require.Panics(t, func() { gs.Play(9) })
	})

	t.Run("panics after the game is over", func(t *testing.T) {
		gs := NewGameState(nil)
		for _, a := range []int{0, 3, 1, 4, 2} {
			gs.Play(a)
		}
		require.Panics(t, func() { gs.Play(8) })
	})
}

func TestGameStateCopy(t *testing.T) {
	gs := NewGameState(nil)
	gs.Play(0)

	c := gs.Copy()
	c.Play(1)

	require.Equal(t, State("X        "), gs.State(), "Copy should not share the board")
	require.Equal(t, State("XO       "), c.State())
}
