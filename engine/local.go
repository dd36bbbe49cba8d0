package engine

import (
	"fmt"
	"time"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

type Option func(e *Local)

// WithObserver registers a callback for every played transition, e.g. a learner's update.
func WithObserver(observer Observer) Option {
	return func(e *Local) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

var _ Engine = (*Local)(nil)

// Local plays games between two in-process agents. Agent 0 always plays X.
type Local struct {
	State     *game.GameState
	Agents    [2]agent.Agent
	observers []Observer
}

func LocalEngine(agents [2]agent.Agent, rules *game.Rules, options ...Option) *Local {
	marks := [2]game.Mark{game.PlayerX, game.PlayerO}
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("agent %d is nil", i))
		}
		if !agent.CanPlay(a, marks[i]) {
			panic(fmt.Sprintf("agent %d (%s) cannot play %s", i, a.Name(), marks[i]))
		}
	}

	e := &Local{
		State:  game.NewGameState(rules),
		Agents: agents,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run resets the board and executes the game loop until the game is over.
func (e *Local) Run() (game.Mark, metrics.GameMetric, []metrics.MoveMetric) {
	e.State.Reset()
	startTime := time.Now()
	moveMetrics := make([]metrics.MoveMetric, 0, e.State.Rules.Cells)

	for !e.State.Terminal() {
		player := e.State.CurrentPlayer
		current := e.agentFor(player)
		state := e.State.State()

		move, searchMetric := current.FindMove(e.State.Board.Copy(), e.State.LegalMoves())
		next, reward, terminal := e.State.Play(move)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.State.Moves,
			Player:       player.String(),
			Agent:        current.Name(),
			Action:       move,
			SearchMetric: searchMetric,
		})

		if len(e.observers) > 0 {
			t := game.Transition{
				State:       state,
				Action:      move,
				Reward:      reward,
				Next:        next,
				NextActions: e.State.LegalMoves(),
				Terminal:    terminal,
			}
			for _, observe := range e.observers {
				observe(t)
			}
		}
	}

	endTime := time.Now()
	winner := e.State.Winner()
	gameMetric := metrics.GameMetric{
		Agent1:     e.Agents[0].Name(),
		Agent2:     e.Agents[1].Name(),
		Winner:     winnerName(winner),
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: e.State.Moves,
	}

	log.Trace().Str("winner", gameMetric.Winner).Int("moves", gameMetric.TotalMoves).Msg("game over")
	return winner, gameMetric, moveMetrics
}

func (e *Local) agentFor(player game.Mark) agent.Agent {
	if player == game.PlayerX {
		return e.Agents[0]
	}
	return e.Agents[1]
}

func winnerName(winner game.Mark) string {
	if winner == game.Empty {
		return ""
	}
	return winner.String()
}
