package learner

import "tictactoe/game"

// Key identifies a single action taken from a state.
type Key struct {
	State  game.State
	Action int
}

// Table is a sparse map of action values. Absent keys read as 0.
// Entries are only created by writes, reads never change the table.
type Table struct {
	values map[Key]float64
}

func NewTable() *Table {
	return &Table{values: make(map[Key]float64)}
}

func (t *Table) Get(state game.State, action int) float64 {
	return t.values[Key{State: state, Action: action}]
}

func (t *Table) set(state game.State, action int, value float64) {
	t.values[Key{State: state, Action: action}] = value
}

// Max returns the highest value among actions from state, 0 when actions is empty.
func (t *Table) Max(state game.State, actions []int) float64 {
	if len(actions) == 0 {
		return 0
	}
	best := t.Get(state, actions[0])
	for _, action := range actions[1:] {
		if v := t.Get(state, action); v > best {
			best = v
		}
	}
	return best
}

// Len is the number of stored entries.
func (t *Table) Len() int {
	return len(t.values)
}

// Snapshot copies the entries so later updates do not show through.
func (t *Table) Snapshot() map[Key]float64 {
	snapshot := make(map[Key]float64, len(t.values))
	for k, v := range t.values {
		snapshot[k] = v
	}
	return snapshot
}
