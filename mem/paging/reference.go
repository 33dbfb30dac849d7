package paging

// A PageReference is one entry of a page reference trace.
type PageReference struct {
	Page  int
	Dirty bool
}

// A Trace is the ordered list of page references. The position of a
// reference in the trace is its logical arrival time. Simulators never modify
// a trace, so one trace can be shared by every run of a sweep.
type Trace []PageReference

// NextUse returns the position of the first reference to page strictly after
// position after. The second return value is false if the page is never
// referenced again.
func (t Trace) NextUse(page, after int) (int, bool) {
	for i := after + 1; i < len(t); i++ {
		if t[i].Page == page {
			return i, true
		}
	}

	return 0, false
}

// DistinctPages returns the number of different pages in the trace.
func (t Trace) DistinctPages() int {
	seen := make(map[int]struct{})
	for _, ref := range t {
		seen[ref.Page] = struct{}{}
	}

	return len(seen)
}
