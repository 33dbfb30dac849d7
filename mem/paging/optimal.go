package paging

// OptimalSimulator evicts the page that will not be needed for the longest
// time. It is the clairvoyant baseline that the other policies are compared
// against; it scans ahead in the trace on every eviction.
type OptimalSimulator struct {
	HookableBase

	numFrames int
}

// NewOptimalSimulator creates an optimal simulator with numFrames frames.
func NewOptimalSimulator(numFrames int) *OptimalSimulator {
	return &OptimalSimulator{numFrames: numFrames}
}

// Simulate replays the trace.
func (s *OptimalSimulator) Simulate(trace Trace) (Result, error) {
	if err := validateNumFrames(s.numFrames); err != nil {
		return Result{}, err
	}

	r := newReplay(s, s.numFrames)
	finder := NewOptimalVictimFinder(trace)

	for now, ref := range trace {
		if idx, ok := r.table.FindResident(ref.Page); ok {
			r.hit(now, idx, ref)
			continue
		}

		r.fault(now, ref)

		idx, ok := r.table.FindEmpty()
		if !ok {
			idx = finder.FindVictim(r.table, now)
			r.evict(now, idx)
		}

		r.table.Load(idx, ref)
	}

	return r.result, nil
}
