package paging

import "fmt"

// Policy names a page replacement policy.
type Policy string

// The supported policies. The values are the names accepted on the command
// line.
const (
	FIFO    Policy = "FIFO"
	Optimal Policy = "OPT"
	Clock   Policy = "CLK"
)

// Policies lists every supported policy.
var Policies = []Policy{FIFO, Optimal, Clock}

// ParsePolicy converts a policy name into a Policy. Names are case
// sensitive.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range Policies {
		if string(p) == name {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownPolicy, name)
}

// Builder can build simulators.
type Builder struct {
	numFrames     int
	registerWidth int
	agingInterval int
	hooks         []Hook
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		numFrames:     1,
		registerWidth: 8,
		agingInterval: 10,
	}
}

// WithNumFrames sets the number of frames of the simulators to build.
func (b Builder) WithNumFrames(numFrames int) Builder {
	b.numFrames = numFrames
	return b
}

// WithRegisterWidth sets the reference register width used by the clock
// simulator.
func (b Builder) WithRegisterWidth(width int) Builder {
	b.registerWidth = width
	return b
}

// WithAgingInterval sets the number of references between register shifts
// used by the clock simulator.
func (b Builder) WithAgingInterval(interval int) Builder {
	b.agingInterval = interval
	return b
}

// WithHook adds a hook that will be registered on every simulator built.
func (b Builder) WithHook(hook Hook) Builder {
	hooks := make([]Hook, len(b.hooks), len(b.hooks)+1)
	copy(hooks, b.hooks)
	b.hooks = append(hooks, hook)

	return b
}

// Build creates a simulator for the policy. Invalid parameters are reported
// here rather than when the simulator runs.
func (b Builder) Build(policy Policy) (Simulator, error) {
	if err := validateNumFrames(b.numFrames); err != nil {
		return nil, err
	}

	var s Simulator

	switch policy {
	case FIFO:
		s = NewFIFOSimulator(b.numFrames)
	case Optimal:
		s = NewOptimalSimulator(b.numFrames)
	case Clock:
		if err := validateRegisterWidth(b.registerWidth); err != nil {
			return nil, err
		}

		if err := validateAgingInterval(b.agingInterval); err != nil {
			return nil, err
		}

		s = NewClockSimulator(b.numFrames, b.registerWidth, b.agingInterval)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownPolicy, policy)
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s, nil
}
