package searcher

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/utils"
)

type Option func(m *Minimax)

var _ Searcher = (*Minimax)(nil)

// Minimax plays one fixed side with full-depth adversarial search.
// Chosen moves are memoized per exact board; the cache only grows.
type Minimax struct {
	side    game.Mark
	rules   *game.Rules
	cache   map[game.State]int
	visits  int
	metrics metrics.Collector
}

func WithRules(rules *game.Rules) Option {
	return func(m *Minimax) {
		if rules != nil {
			m.rules = rules
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMinimax(side game.Mark, options ...Option) *Minimax {
	if side != game.PlayerX && side != game.PlayerO {
		panic(fmt.Sprintf("minimax side must be X or O, got %d", side))
	}

	m := &Minimax{ // Default values
		side:    side,
		rules:   game.NewStandardRules(),
		cache:   make(map[game.State]int),
		metrics: metrics.NewCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Side() game.Mark {
	return m.side
}

// Visits is the number of positions evaluated over the lifetime of the searcher.
func (m *Minimax) Visits() int {
	return m.visits
}

func (m *Minimax) CacheSize() int {
	return len(m.cache)
}

func (m *Minimax) Metrics() metrics.SearchMetric {
	return m.metrics.Complete()
}

// ChooseAction returns the optimal action among actions for the searcher's side.
// Ties keep the first action in enumeration order. The caller's board is not modified.
// A memoized action missing from actions panics.
func (m *Minimax) ChooseAction(board game.Board, actions []int) int {
	m.metrics.Start()

	if len(actions) == 0 {
		panic("cannot choose action: no legal actions")
	}
	if m.rules.Winner(board) != game.Empty {
		panic("cannot choose action: game is over")
	}

	key := board.Key()
	if action, ok := m.cache[key]; ok {
		if utils.FindIndex(actions, action) == -1 {
			panic(fmt.Sprintf("cannot choose action: memoized action %d is not among %v", action, actions))
		}
		m.metrics.AddCacheHit()
		return action
	}

	scratch := board.Copy()
	bestMove := -1
	bestValue := 0
	for _, action := range actions {
		if scratch[action] != game.Empty {
			panic(fmt.Sprintf("cannot choose action: cell %d is occupied", action))
		}
		value := m.probe(scratch, action, m.side, func() int {
			return m.minimax(scratch, m.side.Opponent(), 0)
		})
		if bestMove == -1 || value > bestValue {
			bestValue = value
			bestMove = action
		}
	}

	m.cache[key] = bestMove
	return bestMove
}

// minimax scores board with toMove to play, from the searcher's side.
func (m *Minimax) minimax(board game.Board, toMove game.Mark, depth int) int {
	m.visits++
	m.metrics.AddNode()

	if winner := m.rules.Winner(board); winner != game.Empty {
		return terminalScore(winner, m.side, depth)
	}

	maximizing := toMove == m.side
	best := 0
	found := false
	for i := range board {
		if board[i] != game.Empty {
			continue
		}
		value := m.probe(board, i, toMove, func() int {
			return m.minimax(board, toMove.Opponent(), depth+1)
		})
		if !found || (maximizing && value > best) || (!maximizing && value < best) {
			best = value
			found = true
		}
	}

	if !found { // Full board
		return DrawScore
	}
	return best
}

// probe places mark on cell, evaluates, and always restores the cell.
func (m *Minimax) probe(board game.Board, cell int, mark game.Mark, eval func() int) int {
	board[cell] = mark
	defer func() { board[cell] = game.Empty }()
	return eval()
}
