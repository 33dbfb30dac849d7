// Package experiment runs parameter sweeps of the page replacement
// simulators and hands every result to a set of sinks.
package experiment

import (
	"github.com/sarchlab/pagesim/mem/paging"
)

// A Point is the outcome of one simulation in a sweep. Param is the value of
// the swept parameter.
type Point struct {
	Param  int
	Result paging.Result
}

// Parameter names the simulator parameter a sweep varies.
type Parameter int

// The parameters that can be swept.
const (
	VaryFrames Parameter = iota
	VaryRegisterWidth
	VaryAgingInterval
)

// A Sweep varies one parameter of a simulator and keeps the others fixed.
type Sweep struct {
	// Name identifies the sweep, for example "clock_vary_n".
	Name string

	// Title is printed above the result table.
	Title string

	// Policy is the replacement policy being simulated.
	Policy paging.Policy

	// ParamName is the column header of the swept parameter.
	ParamName string

	// CSVFile is the name of the file the results are exported to.
	CSVFile string

	// Vary is the parameter that takes the values of Values.
	Vary   Parameter
	Values []int

	// Frames, RegisterWidth and AgingInterval are the fixed parameters. The
	// field of the swept parameter is ignored.
	Frames        int
	RegisterWidth int
	AgingInterval int
}

// Parameters returns the frame count, register width and aging interval of
// the simulation that runs for one value of the sweep.
func (s Sweep) Parameters(value int) (frames, registerWidth, agingInterval int) {
	frames, registerWidth, agingInterval =
		s.Frames, s.RegisterWidth, s.AgingInterval

	switch s.Vary {
	case VaryFrames:
		frames = value
	case VaryRegisterWidth:
		registerWidth = value
	case VaryAgingInterval:
		agingInterval = value
	}

	return frames, registerWidth, agingInterval
}

// Builder returns the simulator builder for one value of the sweep.
func (s Sweep) Builder(value int) paging.Builder {
	frames, registerWidth, agingInterval := s.Parameters(value)

	return paging.MakeBuilder().
		WithNumFrames(frames).
		WithRegisterWidth(registerWidth).
		WithAgingInterval(agingInterval)
}

// Range returns the integers from lo to hi, both included.
func Range(lo, hi int) []int {
	if hi < lo {
		return nil
	}

	values := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		values = append(values, v)
	}

	return values
}

// An Outcome holds the points of a completed sweep in the order of the
// sweep values.
type Outcome struct {
	Sweep  Sweep
	Points []Point
}
