package game

// Transition is one observed step handed to a learner's update.
type Transition struct {
	State       State
	Action      int
	Reward      float64
	Next        State
	NextActions []int
	Terminal    bool
}
