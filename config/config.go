package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/solver"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "gomoku/config.json"
)

type InvalidConfig struct {
	field string
	err   string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.field, e.err)
}

func (e *InvalidConfig) Field() string { return e.field }

type Config struct {
	BoardSize  int    `json:"board_size"`
	TimeLimit  int    `json:"time_limit"`  // Solver, in seconds
	Duration   int    `json:"duration_ms"` // MCTS, in milliseconds
	Samples    int    `json:"samples"`
	Playouts   int    `json:"playouts"`
	Cutoff     int    `json:"cutoff"` // 0 plays out to the end
	Policy     string `json:"policy"`
	Goroutines int    `json:"goroutines"`
	Seed       uint64 `json:"seed"` // 0 seeds from the clock
	Games      int    `json:"games"`
	LogLevel   string `json:"log_level"`
}

// InitConfig loads the config at path, or the first gomoku/config.json found in the XDG
// config directories when path is empty. Missing fields keep their defaults.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		absPath, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = absPath
		}
	}
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs error
	invalid := func(field, format string, args ...any) {
		errs = multierror.Append(errs, &InvalidConfig{field: field, err: fmt.Sprintf(format, args...)})
	}

	if c.BoardSize < game.MinSize || c.BoardSize > game.MaxSize {
		invalid("board_size", "%d not in [%d, %d]", c.BoardSize, game.MinSize, game.MaxSize)
	}
	if err := solver.ValidateTimeLimit(c.TimeLimit); err != nil {
		invalid("time_limit", "%v", err)
	}
	if c.Duration < 0 {
		invalid("duration_ms", "must not be negative")
	}
	if c.Samples < 1 {
		invalid("samples", "must be positive")
	}
	if c.Playouts < 1 {
		invalid("playouts", "must be positive")
	}
	if c.Cutoff < 0 || c.Cutoff > searcher.MaxCutoff {
		invalid("cutoff", "%d not in [0, %d]", c.Cutoff, searcher.MaxCutoff)
	}
	if _, err := searcher.ParsePolicy(c.Policy); err != nil {
		invalid("policy", "%v", err)
	}
	if c.Goroutines < 1 {
		invalid("goroutines", "must be positive")
	}
	if c.Games < 1 {
		invalid("games", "must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		invalid("log_level", "%v", err)
	}
	return errs
}

func (c *Config) SolverTimeLimit() time.Duration {
	return time.Duration(c.TimeLimit) * time.Second
}

func (c *Config) MCTSDuration() time.Duration {
	return time.Duration(c.Duration) * time.Millisecond
}

// Agent returns the MCTS agent described by the config, as the base of experiments.
func (c *Config) Agent() metrics.AgentConfig {
	return metrics.AgentConfig{
		Kind:       metrics.MCTSAgent,
		Duration:   c.MCTSDuration(),
		TimeLimit:  c.SolverTimeLimit(),
		Samples:    c.Samples,
		Playouts:   c.Playouts,
		Cutoff:     c.Cutoff,
		Policy:     c.Policy,
		Goroutines: c.Goroutines,
		Seed:       c.Seed,
	}
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %s", filePath)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return errors.Wrapf(err, "failed to parse config %s", filePath)
	}
	return nil
}
