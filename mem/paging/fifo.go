package paging

// FIFOSimulator evicts the page that has been resident the longest.
type FIFOSimulator struct {
	HookableBase

	numFrames int
}

// NewFIFOSimulator creates a FIFO simulator with numFrames frames.
func NewFIFOSimulator(numFrames int) *FIFOSimulator {
	return &FIFOSimulator{numFrames: numFrames}
}

// Simulate replays the trace. Each load is stamped with the position of the
// faulting reference, so load times increase in load order.
func (s *FIFOSimulator) Simulate(trace Trace) (Result, error) {
	if err := validateNumFrames(s.numFrames); err != nil {
		return Result{}, err
	}

	r := newReplay(s, s.numFrames)
	finder := NewFIFOVictimFinder()

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
		r.table[idx].LoadTime = now
	}

	return r.result, nil
}
