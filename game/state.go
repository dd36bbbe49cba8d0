package game

import (
	"fmt"

	"tictactoe/utils"
)

// GameState owns the board and the turn order of a single game.
type GameState struct {
	Rules         *Rules // Board size and winning lines
	Board         Board  // Cell marks, indexed by cell
	CurrentPlayer Mark   // The player to move
	LastMove      int    // The last action played, -1 before the first move
	Moves         int    // Number of moves played since reset
	Won           Mark   // The winner of the game, Empty if no winner yet
	terminal      bool
}

// NewGameState initializes a game on rules, ready to play.
func NewGameState(rules *Rules) *GameState {
	if rules == nil {
		rules = NewStandardRules()
	}
	gs := &GameState{Rules: rules}
	gs.Reset()
	return gs
}

// Reset clears the board, gives the move to X and returns the initial state.
func (gs *GameState) Reset() State {
	gs.Board = NewBoard(gs.Rules.Cells)
	gs.CurrentPlayer = PlayerX
	gs.LastMove = -1
	gs.Moves = 0
	gs.Won = Empty
	gs.terminal = false
	return gs.Board.Key()
}

// State returns the canonical key of the current board.
func (gs *GameState) State() State {
	return gs.Board.Key()
}

// LegalMoves returns the empty cells, none once the board is full.
func (gs *GameState) LegalMoves() []int {
	return gs.Board.LegalActions()
}

// Play places the current player's mark on action and passes the turn.
// The reward is for the player who just moved: 1 on completing a line, 0 otherwise.
// Playing an occupied cell or a finished game is a caller bug and panics.
func (gs *GameState) Play(action int) (State, float64, bool) {
	if gs.terminal {
		panic("cannot play: game is over")
	}
	if utils.FindIndex(gs.LegalMoves(), action) == -1 {
		panic(fmt.Sprintf("cannot play: illegal action %d on board %q", action, gs.Board.Key()))
	}

	mover := gs.CurrentPlayer
	gs.Board[action] = mover
	gs.LastMove = action
	gs.Moves++

	reward := 0.0
	if gs.Rules.Winner(gs.Board) == mover {
		gs.Won = mover
		reward = WinReward
	}
	gs.terminal = gs.Won != Empty || gs.Board.Full()
	gs.CurrentPlayer = mover.Opponent()

	return gs.Board.Key(), reward, gs.terminal
}

// Terminal reports whether a winner exists or no legal move remains.
func (gs *GameState) Terminal() bool {
	return gs.terminal
}

// Winner returns the mark that completed a line, or Empty.
func (gs *GameState) Winner() Mark {
	return gs.Won
}

// Draw reports a finished game without a winner.
func (gs *GameState) Draw() bool {
	return gs.terminal && gs.Won == Empty
}

func (gs GameState) Copy() *GameState {
	return &GameState{
		Rules:         gs.Rules, // Rules are immutable
		Board:         gs.Board.Copy(),
		CurrentPlayer: gs.CurrentPlayer,
		LastMove:      gs.LastMove,
		Moves:         gs.Moves,
		Won:           gs.Won,
		terminal:      gs.terminal,
	}
}
