package paging

// A VictimFinder decides which frame of a full table should be evicted. now
// is the position of the faulting reference in the trace.
type VictimFinder interface {
	FindVictim(table FrameTable, now int) int
}

// FIFOVictimFinder evicts the page that was loaded first.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	e := new(FIFOVictimFinder)
	return e
}

// FindVictim returns the frame with the smallest load time. Ties go to the
// frame with the lowest index.
func (e *FIFOVictimFinder) FindVictim(table FrameTable, _ int) int {
	victim := 0
	oldest := table[0].LoadTime

	for i := 1; i < len(table); i++ {
		if table[i].LoadTime < oldest {
			oldest = table[i].LoadTime
			victim = i
		}
	}

	return victim
}

// OptimalVictimFinder evicts the page whose next use is the farthest in the
// future. It needs the whole trace to look ahead.
type OptimalVictimFinder struct {
	trace Trace
}

// NewOptimalVictimFinder returns a victim finder that looks ahead in trace.
func NewOptimalVictimFinder(trace Trace) *OptimalVictimFinder {
	return &OptimalVictimFinder{trace: trace}
}

// FindVictim scans the frames in index order. The first page that is never
// referenced after now is evicted right away. Otherwise the page with the
// strictly farthest next use wins, so ties go to the lower index.
func (e *OptimalVictimFinder) FindVictim(table FrameTable, now int) int {
	victim := 0
	farthest := -1

	for i, f := range table {
		next, ok := e.trace.NextUse(f.Page, now)
		if !ok {
			return i
		}

		if next > farthest {
			farthest = next
			victim = i
		}
	}

	return victim
}

// ClockVictimFinder runs the second-chance scan over the reference
// registers. It owns the clock hand, which persists across faults within one
// simulation run.
type ClockVictimFinder struct {
	hand int
}

// NewClockVictimFinder returns a clock victim finder with the hand at frame
// 0.
func NewClockVictimFinder() *ClockVictimFinder {
	return &ClockVictimFinder{}
}

// Hand returns the index of the frame the hand points at.
func (e *ClockVictimFinder) Hand() int {
	return e.hand
}

// FilledEmpty tells the finder that the empty frame at idx has just been
// filled. If the hand points at that frame it moves to the next one; a fill
// anywhere else leaves the hand where it is.
func (e *ClockVictimFinder) FilledEmpty(idx, numFrames int) {
	if idx == e.hand {
		e.advance(numFrames)
	}
}

// FindVictim starts at the hand and evicts the first frame whose register is
// zero. Every frame passed over gets a second chance: its register is
// shifted right by one bit. The hand is left one past the victim.
func (e *ClockVictimFinder) FindVictim(table FrameTable, _ int) int {
	for {
		f := &table[e.hand]
		if f.RefBits == 0 {
			victim := e.hand
			e.advance(len(table))

			return victim
		}

		f.RefBits >>= 1
		e.advance(len(table))
	}
}

func (e *ClockVictimFinder) advance(numFrames int) {
	e.hand = (e.hand + 1) % numFrames
}
