package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the game
type Config struct {
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	FrameRate        time.Duration `json:"frame_rate"`
	Seed             int64         `json:"seed"`
	Pattern          string        `json:"pattern"`
	MaxGenerations   int           `json:"max_generations"`
	Interactive      bool          `json:"interactive"`
	ShowNeighbors    bool          `json:"show_neighbors"`
	StopWhenStagnant bool          `json:"stop_when_stagnant"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:            10,
		Height:           10,
		FrameRate:        50 * time.Millisecond,
		Pattern:          "random",
		MaxGenerations:   1000,
		Interactive:      true,
		ShowNeighbors:    true,
		StopWhenStagnant: true,
	}
}

// LoadConfig loads configuration from JSON file, on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, config.Validate()
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame_rate must be positive, got %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	return nil
}

// RandomSeed returns the configured seed, or a time-based one when unset
func (c Config) RandomSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
