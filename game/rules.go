package game

// Line is a set of cell indices that wins when fully owned by one mark.
type Line []int

// Rules defines the board size and its winning lines.
type Rules struct {
	Cells int
	Lines []Line
}

// NewStandardRules returns the 3x3 board: three rows, three columns, two diagonals.
func NewStandardRules() *Rules {
	return NewGridRules(3)
}

// NewGridRules builds the rows, columns and both diagonals of an n x n grid.
func NewGridRules(n int) *Rules {
	if n < 1 {
		panic("grid size must be positive")
	}

	lines := make([]Line, 0, 2*n+2)
	for r := 0; r < n; r++ {
		row := make(Line, n)
		for c := 0; c < n; c++ {
			row[c] = r*n + c
		}
		lines = append(lines, row)
	}
	for c := 0; c < n; c++ {
		col := make(Line, n)
		for r := 0; r < n; r++ {
			col[r] = r*n + c
		}
		lines = append(lines, col)
	}

	diagonal := make(Line, n)
	antiDiagonal := make(Line, n)
	for i := 0; i < n; i++ {
		diagonal[i] = i*n + i
		antiDiagonal[i] = i*n + (n - 1 - i)
	}
	lines = append(lines, diagonal, antiDiagonal)

	return &Rules{Cells: n * n, Lines: lines}
}

// Winner returns the mark owning a complete line on board, or Empty.
func (r *Rules) Winner(board Board) Mark {
	return Winner(board, r.Lines)
}

// Winner is a pure scan of lines against board.
func Winner(board Board, lines []Line) Mark {
	for _, line := range lines {
		first := board[line[0]]
		if first == Empty {
			continue
		}
		owned := true
		for _, idx := range line[1:] {
			if board[idx] != first {
				owned = false
				break
			}
		}
		if owned {
			return first
		}
	}
	return Empty
}

// Terminal reports whether board has a winner or no empty cell left.
func (r *Rules) Terminal(board Board) bool {
	return r.Winner(board) != Empty || board.Full()
}
