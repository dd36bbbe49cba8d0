package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"tictactoe/experiments"
	"tictactoe/learner"
	"tictactoe/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the full configuration of the command line tool.
// Priority: environment > file > defaults.
type Config struct {
	Learner    learner.Config   `json:"learner" yaml:"learner"`
	Training   TrainingConfig   `json:"training" yaml:"training"`
	Evaluation EvaluationConfig `json:"evaluation" yaml:"evaluation"`
	Sweep      SweepConfig      `json:"sweep" yaml:"sweep"`
	Output     OutputConfig     `json:"output" yaml:"output"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	LogLevel   string           `json:"log_level" yaml:"log_level"`
	Seed       uint64           `json:"seed" yaml:"seed"`
}

type TrainingConfig struct {
	Episodes int `json:"episodes" yaml:"episodes"`
}

type EvaluationConfig struct {
	Games int `json:"games" yaml:"games"`
}

type SweepConfig struct {
	MaxEpisodes int `json:"max_episodes" yaml:"max_episodes"`
	Step        int `json:"step" yaml:"step"`
	Workers     int `json:"workers" yaml:"workers"` // 0 evaluates every checkpoint at once
}

type OutputConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

func Default() Config {
	return Config{
		Learner:    learner.DefaultConfig(),
		Training:   TrainingConfig{Episodes: meta.EPISODES},
		Evaluation: EvaluationConfig{Games: meta.GAMES},
		Sweep:      SweepConfig{MaxEpisodes: meta.SWEEP_MAX, Step: meta.SWEEP_STEP},
		Output:     OutputConfig{Dir: meta.OUTPUT_DIR},
		Server:     ServerConfig{Addr: meta.SERVER_ADDR},
		LogLevel:   "info",
		Seed:       1,
	}
}

// Load reads the config at path and validates it.
func Load(path string) (Config, error) {
	config, err := Read(path)
	if err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Read reads the config at path over the defaults and applies environment overrides.
// A missing file leaves the defaults in place. The result is not validated.
func Read(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadFromEnv(&config)
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadFromEnv(config *Config) {
	// Learner
	if v := os.Getenv("TTT_EPSILON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Learner.Epsilon = f
		}
	}
	if v := os.Getenv("TTT_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Learner.Alpha = f
		}
	}
	if v := os.Getenv("TTT_GAMMA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Learner.Gamma = f
		}
	}

	// Runs
	if v := os.Getenv("TTT_EPISODES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Training.Episodes = i
		}
	}
	if v := os.Getenv("TTT_GAMES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Evaluation.Games = i
		}
	}
	if v := os.Getenv("TTT_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Sweep.Workers = i
		}
	}
	if v := os.Getenv("TTT_SEED"); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Seed = u
		}
	}

	if v := os.Getenv("TTT_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("TTT_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := os.Getenv("TTT_ADDR"); v != "" {
		config.Server.Addr = v
	}
}

// Validate checks every section. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.Learner.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Training.Episodes < 0 {
		return fmt.Errorf("%w: episodes must be >= 0", ErrInvalidConfig)
	}
	if c.Evaluation.Games < 1 {
		return fmt.Errorf("%w: games must be >= 1", ErrInvalidConfig)
	}
	if err := c.SweepConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SweepConfig converts the sweep section for experiments.Sweep.
func (c Config) SweepConfig() experiments.SweepConfig {
	return experiments.SweepConfig{
		MaxEpisodes: c.Sweep.MaxEpisodes,
		Step:        c.Sweep.Step,
		Games:       c.Evaluation.Games,
		Workers:     c.Sweep.Workers,
		Seed:        c.Seed,
		Learner:     c.Learner,
	}
}
