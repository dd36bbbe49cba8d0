package learner

import (
	"errors"
	"fmt"
	"math"

	"tictactoe/meta"
)

var ErrInvalidConfig = errors.New("invalid learner config")

// Config holds the hyper-parameters of the learner.
type Config struct {
	Epsilon float64 `yaml:"epsilon" json:"epsilon"` // Probability of a uniformly random move
	Alpha   float64 `yaml:"alpha" json:"alpha"`     // Learning rate
	Gamma   float64 `yaml:"gamma" json:"gamma"`     // Discount of the opponent's best reply
}

func DefaultConfig() Config {
	return Config{
		Epsilon: meta.EPSILON,
		Alpha:   meta.ALPHA,
		Gamma:   meta.GAMMA,
	}
}

// Validate requires epsilon in [0,1], alpha in (0,1] and gamma in [0,1].
func (c Config) Validate() error {
	if math.IsNaN(c.Epsilon) || c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("%w: epsilon %v not in [0,1]", ErrInvalidConfig, c.Epsilon)
	}
	if math.IsNaN(c.Alpha) || c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v not in (0,1]", ErrInvalidConfig, c.Alpha)
	}
	if math.IsNaN(c.Gamma) || c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("%w: gamma %v not in [0,1]", ErrInvalidConfig, c.Gamma)
	}
	return nil
}
