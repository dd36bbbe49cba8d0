package searcher

import (
	"testing"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, s string) game.Board {
	t.Helper()
	board, err := game.ParseBoard(s)
	require.NoError(t, err)
	return board
}

func TestNewMinimax(t *testing.T) {
	t.Run("panics without a side", func(t *testing.T) {
		require.Panics(t, func() {
			NewMinimax(game.Empty)
		}, "Should panic when the side is Empty")
	})

	t.Run("keeps default rules when given nil", func(t *testing.T) {
		m := NewMinimax(game.PlayerO, WithRules(nil), WithMetrics(nil))
		require.Equal(t, game.PlayerO, m.Side())
		require.Equal(t, 9, m.rules.Cells)
	})
}

func TestTerminalScore(t *testing.T) {
	require.Equal(t, 10, terminalScore(game.PlayerX, game.PlayerX, 0))
	require.Equal(t, 7, terminalScore(game.PlayerX, game.PlayerX, 3), "Later wins should score lower")
	require.Equal(t, -7, terminalScore(game.PlayerO, game.PlayerX, 3))
	require.Equal(t, -10, terminalScore(game.PlayerX, game.PlayerO, 0))
	require.Equal(t, 0, terminalScore(game.Empty, game.PlayerO, 5))
}

func TestMinimaxChooseAction(t *testing.T) {
	t.Run("takes an immediate win over a block", func(t *testing.T) {
		board := mustBoard(t, "XX OO    ")
		m := NewMinimax(game.PlayerX)

		require.Equal(t, 2, m.ChooseAction(board, board.LegalActions()))
	})

	t.Run("blocks the opponent's line as X", func(t *testing.T) {
		board := mustBoard(t, "X  OO   X")
		m := NewMinimax(game.PlayerX)

		require.Equal(t, 5, m.ChooseAction(board, board.LegalActions()))
	})

	t.Run("blocks the opponent's line as O", func(t *testing.T) {
		board := mustBoard(t, "XX  O    ")
		m := NewMinimax(game.PlayerO)

		require.Equal(t, 2, m.ChooseAction(board, board.LegalActions()))
	})

	t.Run("keeps the first of equally valued moves", func(t *testing.T) {
		// Every opening move draws under perfect play
		board := game.NewBoard(9)
		m := NewMinimax(game.PlayerX)

		require.Equal(t, 0, m.ChooseAction(board, board.LegalActions()))
	})

	t.Run("restores the caller's board", func(t *testing.T) {
		board := mustBoard(t, "X   O    ")
		before := board.Copy()
		m := NewMinimax(game.PlayerX)

		m.ChooseAction(board, board.LegalActions())
		require.Equal(t, before, board, "Search should leave the board untouched")
	})

	t.Run("panics without legal actions", func(t *testing.T) {
		board := mustBoard(t, "XOXXOOOXX")
		m := NewMinimax(game.PlayerO)

		require.Panics(t, func() { m.ChooseAction(board, board.LegalActions()) })
	})

	t.Run("panics on a won board", func(t *testing.T) {
		board := mustBoard(t, "XXXOO    ")
		m := NewMinimax(game.PlayerO)

		require.Panics(t, func() { m.ChooseAction(board, board.LegalActions()) })
	})

	t.Run("panics on an occupied action", func(t *testing.T) {
		board := mustBoard(t, "X        ")
		m := NewMinimax(game.PlayerO)

		require.Panics(t, func() { m.ChooseAction(board, []int{0}) })
	})
}

func TestMinimaxMemoization(t *testing.T) {
	board := mustBoard(t, "X        ")
	collector := metrics.NewCollector()
	m := NewMinimax(game.PlayerO, WithMetrics(collector))

	first := m.ChooseAction(board, board.LegalActions())
	visits := m.Visits()
	firstMetric := m.Metrics()
	require.Positive(t, visits, "First call should search")
	require.Equal(t, visits, firstMetric.Nodes)
	require.False(t, firstMetric.CacheHit)
	require.Equal(t, 1, m.CacheSize())

	second := m.ChooseAction(board, board.LegalActions())
	require.Equal(t, first, second, "Identical boards should get the identical action")
	require.Equal(t, visits, m.Visits(), "Cache hit should not visit any node")
	require.True(t, m.Metrics().CacheHit)
	require.Equal(t, 1, m.CacheSize())

	t.Run("default collector reports", func(t *testing.T) {
		m := NewMinimax(game.PlayerO)
		m.ChooseAction(board, board.LegalActions())
		require.Positive(t, m.Metrics().Nodes)
		require.False(t, m.Metrics().CacheHit)

		m.ChooseAction(board, board.LegalActions())
		require.Zero(t, m.Metrics().Nodes)
		require.True(t, m.Metrics().CacheHit)
	})

	t.Run("panics when memoized action is not offered", func(t *testing.T) {
		others := []int{}
		for _, action := range board.LegalActions() {
			if action != first {
				others = append(others, action)
			}
		}
		require.Panics(t, func() { m.ChooseAction(board, others) })
	})
}

func TestMinimaxAnswersCorner(t *testing.T) {
	// Against a corner opening, only the centre avoids a forced loss
	board := mustBoard(t, "X        ")
	m := NewMinimax(game.PlayerO)

	require.Equal(t, 4, m.ChooseAction(board, board.LegalActions()))
}
