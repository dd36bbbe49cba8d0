package game

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	PlayerX
	PlayerO
)

// Reward granted to the player whose move completes a line
const WinReward = 1.0

// State is the canonical board key: the cell marks in order, no symmetry reduction.
type State string

func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's mark, Empty stays Empty.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// ParseMark maps 'X', 'O' and ' ' to marks.
func ParseMark(r rune) (Mark, bool) {
	switch r {
	case 'X', 'x':
		return PlayerX, true
	case 'O', 'o':
		return PlayerO, true
	case ' ', '.', '-':
		return Empty, true
	}
	return Empty, false
}
