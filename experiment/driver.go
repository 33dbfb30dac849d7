package experiment

import (
	"fmt"

	"github.com/sarchlab/pagesim/mem/paging"
)

// A Sink consumes the points of the sweeps as they are produced.
type Sink interface {
	// StartSweep is called before the first point of a sweep.
	StartSweep(s Sweep) error

	// Record is called once per point, in sweep order.
	Record(s Sweep, p Point) error

	// EndSweep is called after the last point of a sweep.
	EndSweep(s Sweep) error
}

// A Driver runs the sweeps of one replacement policy.
type Driver struct {
	policy paging.Policy
	sweeps []Sweep
	sinks  []Sink
	hooks  []paging.Hook
}

// NewDriver creates the driver of the experiments of a policy.
func NewDriver(policy paging.Policy, cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch policy {
	case paging.FIFO:
		return NewFIFODriver(cfg), nil
	case paging.Optimal:
		return NewOptimalDriver(cfg), nil
	case paging.Clock:
		return NewClockDriver(cfg), nil
	}

	return nil, fmt.Errorf("%w %q", paging.ErrUnknownPolicy, policy)
}

// NewFIFODriver creates a driver that sweeps the number of frames of the FIFO
// simulator.
func NewFIFODriver(cfg Config) *Driver {
	return &Driver{
		policy: paging.FIFO,
		sweeps: []Sweep{{
			Name:      "fifo",
			Title:     "FIFO",
			Policy:    paging.FIFO,
			ParamName: "Frames",
			CSVFile:   "fifo_results.csv",
			Values:    Range(cfg.MinFrames, cfg.MaxFrames),
			Vary:      VaryFrames,
		}},
	}
}

// NewOptimalDriver creates a driver that sweeps the number of frames of the
// optimal simulator.
func NewOptimalDriver(cfg Config) *Driver {
	return &Driver{
		policy: paging.Optimal,
		sweeps: []Sweep{{
			Name:      "optimal",
			Title:     "OPT",
			Policy:    paging.Optimal,
			ParamName: "Frames",
			CSVFile:   "optimal_results.csv",
			Values:    Range(cfg.MinFrames, cfg.MaxFrames),
			Vary:      VaryFrames,
		}},
	}
}

// NewClockDriver creates a driver with two clock sweeps at a fixed number of
// frames. The first varies the register width at a fixed aging interval; the
// second varies the aging interval at a fixed register width.
func NewClockDriver(cfg Config) *Driver {
	return &Driver{
		policy: paging.Clock,
		sweeps: []Sweep{
			{
				Name:          "clock_vary_n",
				Title:         fmt.Sprintf("CLK, m=%d", cfg.FixedAgingInterval),
				Policy:        paging.Clock,
				ParamName:     "n",
				CSVFile:       "clock_vary_n.csv",
				Values:        Range(cfg.MinRegisterWidth, cfg.MaxRegisterWidth),
				Frames:        cfg.ClockFrames,
				AgingInterval: cfg.FixedAgingInterval,
				Vary:          VaryRegisterWidth,
			},
			{
				Name:          "clock_vary_m",
				Title:         fmt.Sprintf("CLK, n=%d", cfg.FixedRegisterWidth),
				Policy:        paging.Clock,
				ParamName:     "m",
				CSVFile:       "clock_vary_m.csv",
				Values:        Range(cfg.MinAgingInterval, cfg.MaxAgingInterval),
				Frames:        cfg.ClockFrames,
				RegisterWidth: cfg.FixedRegisterWidth,
				Vary:          VaryAgingInterval,
			},
		},
	}
}

// Policy returns the policy the driver simulates.
func (d *Driver) Policy() paging.Policy {
	return d.policy
}

// Sweeps returns the sweeps the driver runs, in order.
func (d *Driver) Sweeps() []Sweep {
	return d.sweeps
}

// NumPoints returns the number of simulations a run performs.
func (d *Driver) NumPoints() int {
	n := 0
	for _, s := range d.sweeps {
		n += len(s.Values)
	}

	return n
}

// AddSink registers a sink. Sinks receive every point in registration order.
func (d *Driver) AddSink(s Sink) {
	d.sinks = append(d.sinks, s)
}

// AcceptHook registers a hook on every simulator the driver builds.
func (d *Driver) AcceptHook(h paging.Hook) {
	d.hooks = append(d.hooks, h)
}

// Run performs every sweep on the trace, one simulation at a time. The trace
// is shared by all simulations and is never modified. Run stops at the first
// error returned by a simulator or a sink.
func (d *Driver) Run(trace paging.Trace) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(d.sweeps))

	for _, s := range d.sweeps {
		points, err := d.runSweep(s, trace)
		if err != nil {
			return outcomes, fmt.Errorf("sweep %s: %w", s.Name, err)
		}

		outcomes = append(outcomes, Outcome{Sweep: s, Points: points})
	}

	return outcomes, nil
}

func (d *Driver) runSweep(s Sweep, trace paging.Trace) ([]Point, error) {
	for _, sink := range d.sinks {
		if err := sink.StartSweep(s); err != nil {
			return nil, err
		}
	}

	points := make([]Point, 0, len(s.Values))

	for _, v := range s.Values {
		p, err := d.simulate(s, v, trace)
		if err != nil {
			return points, err
		}

		points = append(points, p)

		for _, sink := range d.sinks {
			if err := sink.Record(s, p); err != nil {
				return points, err
			}
		}
	}

	for _, sink := range d.sinks {
		if err := sink.EndSweep(s); err != nil {
			return points, err
		}
	}

	return points, nil
}

func (d *Driver) simulate(s Sweep, value int, trace paging.Trace) (Point, error) {
	b := s.Builder(value)
	for _, h := range d.hooks {
		b = b.WithHook(h)
	}

	sim, err := b.Build(s.Policy)
	if err != nil {
		return Point{}, fmt.Errorf("%s=%d: %w", s.ParamName, value, err)
	}

	res, err := sim.Simulate(trace)
	if err != nil {
		return Point{}, fmt.Errorf("%s=%d: %w", s.ParamName, value, err)
	}

	return Point{Param: value, Result: res}, nil
}
