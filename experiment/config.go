package experiment

import (
	"errors"
	"fmt"
)

// Config holds the parameter ranges of the experiments.
type Config struct {
	// Frame counts swept by the FIFO and optimal experiments.
	MinFrames int
	MaxFrames int

	// ClockFrames is the frame count of both clock experiments.
	ClockFrames int

	// The register width sweep runs at a fixed aging interval.
	MinRegisterWidth   int
	MaxRegisterWidth   int
	FixedAgingInterval int

	// The aging interval sweep runs at a fixed register width.
	MinAgingInterval   int
	MaxAgingInterval   int
	FixedRegisterWidth int
}

// DefaultConfig returns the standard experiment configuration.
func DefaultConfig() Config {
	return Config{
		MinFrames:          1,
		MaxFrames:          100,
		ClockFrames:        50,
		MinRegisterWidth:   1,
		MaxRegisterWidth:   32,
		FixedAgingInterval: 10,
		MinAgingInterval:   1,
		MaxAgingInterval:   100,
		FixedRegisterWidth: 8,
	}
}

// ErrInvalidConfig is wrapped by every error returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid experiment configuration")

// Validate checks that every range is non-empty and that every value can be
// simulated.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.MinFrames >= 1, "min frames must be at least 1"},
		{c.MaxFrames >= c.MinFrames, "max frames must not be below min frames"},
		{c.ClockFrames >= 1, "clock frames must be at least 1"},
		{c.MinRegisterWidth >= 1, "min register width must be at least 1"},
		{c.MaxRegisterWidth <= 32, "max register width must be at most 32"},
		{
			c.MaxRegisterWidth >= c.MinRegisterWidth,
			"max register width must not be below min register width",
		},
		{
			c.FixedRegisterWidth >= 1 && c.FixedRegisterWidth <= 32,
			"fixed register width must be between 1 and 32",
		},
		{c.MinAgingInterval >= 1, "min aging interval must be at least 1"},
		{
			c.MaxAgingInterval >= c.MinAgingInterval,
			"max aging interval must not be below min aging interval",
		},
		{c.FixedAgingInterval >= 1, "fixed aging interval must be at least 1"},
	}

	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}

	return nil
}
