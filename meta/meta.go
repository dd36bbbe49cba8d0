// meta/meta.go
package meta

// EPSILON is the default exploration rate of the learner.
const EPSILON = 0.1

// ALPHA is the default learning rate.
const ALPHA = 0.5

// GAMMA is the default discount applied to the opponent's best reply.
const GAMMA = 0.9

// EPISODES defines the number of self-play games for the train command.
const EPISODES = 25000

// GAMES defines the number of evaluation games per match.
const GAMES = 1000

// SWEEP_MAX is the largest training length evaluated by the sweep.
const SWEEP_MAX = 30000

// SWEEP_STEP is the training length increment between sweep checkpoints.
const SWEEP_STEP = 1500

// BAR_WIDTH is the number of '#' drawn for a draw rate of 1.
const BAR_WIDTH = 50

const OUTPUT_DIR = "results"

const SERVER_ADDR = ":8080"
