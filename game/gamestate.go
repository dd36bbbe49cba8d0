package game

import (
	"fmt"
	"math"
	"strings"
)

// Board is the ordered sequence of cell marks.
type Board []Mark

// NewBoard returns an empty board with the given number of cells.
func NewBoard(cells int) Board {
	return make(Board, cells)
}

// ParseBoard reads a board from its State form, e.g. "X O  O  X".
func ParseBoard(s string) (Board, error) {
	runes := []rune(s)
	board := make(Board, len(runes))
	for i, r := range runes {
		mark, ok := ParseMark(r)
		if !ok {
			return nil, fmt.Errorf("invalid mark %q at cell %d", r, i)
		}
		board[i] = mark
	}
	return board, nil
}

// Copy of the board, sharing no memory with the original.
func (b Board) Copy() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// Key serializes the board into its State.
func (b Board) Key() State {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, m := range b {
		sb.WriteString(m.String())
	}
	return State(sb.String())
}

// LegalActions returns empty cell indices in ascending order.
func (b Board) LegalActions() []int {
	actions := make([]int, 0, len(b))
	for i, m := range b {
		if m == Empty {
			actions = append(actions, i)
		}
	}
	return actions
}

func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of cells holding mark.
func (b Board) Count(mark Mark) int {
	n := 0
	for _, m := range b {
		if m == mark {
			n++
		}
	}
	return n
}

// ToMove infers the player to move from mark counts, X moves first.
func (b Board) ToMove() Mark {
	if b.Count(PlayerX) > b.Count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}

// Reachable reports whether the mark counts can come from alternating play starting with X.
func (b Board) Reachable() bool {
	diff := b.Count(PlayerX) - b.Count(PlayerO)
	return diff == 0 || diff == 1
}

// String renders the board as rows of "X | O |  ".
func (b Board) String() string {
	n := int(math.Sqrt(float64(len(b))))
	if n*n != len(b) {
		return string(b.Key())
	}

	rows := make([]string, 0, n)
	for r := 0; r < n; r++ {
		cells := make([]string, n)
		for c := 0; c < n; c++ {
			cells[c] = b[r*n+c].String()
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}
