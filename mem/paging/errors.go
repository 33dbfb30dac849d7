package paging

import "errors"

var (
	// ErrInvalidFrameCount is returned when a simulator is configured with
	// fewer than one frame.
	ErrInvalidFrameCount = errors.New("frame count must be at least 1")

	// ErrInvalidRegisterWidth is returned when the clock reference register
	// is not between 1 and 32 bits wide.
	ErrInvalidRegisterWidth = errors.New(
		"reference register width must be between 1 and 32 bits")

	// ErrInvalidAgingInterval is returned when the clock aging interval is
	// smaller than one reference.
	ErrInvalidAgingInterval = errors.New("aging interval must be at least 1")

	// ErrUnknownPolicy is returned when a policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("unknown replacement policy")
)
