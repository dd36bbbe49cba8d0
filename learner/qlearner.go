package learner

import (
	"time"

	"tictactoe/game"
	"tictactoe/utils"

	"golang.org/x/exp/rand"
)

type Option func(q *QLearner)

// WithSeed makes the learner's random choices reproducible.
func WithSeed(seed uint64) Option {
	return func(q *QLearner) {
		q.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand shares an existing random source with the learner.
func WithRand(rng *rand.Rand) Option {
	return func(q *QLearner) {
		if rng != nil {
			q.rng = rng
		}
	}
}

// QLearner learns action values for the player to move using a one step
// adversarial update: the value of the next state belongs to the opponent,
// so the discounted future is subtracted from the reward.
type QLearner struct {
	config  Config
	table   *Table
	rng     *rand.Rand
	updates int
}

// NewQLearner validates config and returns a learner with an empty table.
func NewQLearner(config Config, options ...Option) (*QLearner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	q := &QLearner{ // Default values
		config: config,
		table:  NewTable(),
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(q)
	}
	return q, nil
}

// BestAction returns the highest valued action, breaking ties uniformly at random.
func (q *QLearner) BestAction(state game.State, actions []int) int {
	if len(actions) == 0 {
		panic("cannot choose action: no legal actions")
	}
	best := utils.MaxAll(actions, func(action int) float64 {
		return q.table.Get(state, action)
	})
	return best[q.rng.Intn(len(best))]
}

// ChooseAction explores with probability epsilon and exploits otherwise.
func (q *QLearner) ChooseAction(state game.State, actions []int) int {
	if len(actions) == 0 {
		panic("cannot choose action: no legal actions")
	}
	if q.rng.Float64() < q.config.Epsilon {
		return actions[q.rng.Intn(len(actions))]
	}
	return q.BestAction(state, actions)
}

// Update moves Q(state, action) towards reward - gamma * max Q(next, a').
// Terminal transitions and transitions without next actions have no future.
func (q *QLearner) Update(t game.Transition) {
	future := 0.0
	if !t.Terminal && len(t.NextActions) > 0 {
		future = q.table.Max(t.Next, t.NextActions)
	}
	target := t.Reward - q.config.Gamma*future

	current := q.table.Get(t.State, t.Action)
	q.table.set(t.State, t.Action, current+q.config.Alpha*(target-current))
	q.updates++
}

func (q *QLearner) Value(state game.State, action int) float64 {
	return q.table.Get(state, action)
}

func (q *QLearner) Table() *Table {
	return q.table
}

func (q *QLearner) Config() Config {
	return q.config
}

// Updates is the number of transitions learned from.
func (q *QLearner) Updates() int {
	return q.updates
}
