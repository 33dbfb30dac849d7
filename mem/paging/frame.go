// Package paging provides the frame table and the page replacement
// simulators that replay a page reference trace against it.
package paging

// NoPage is the page number of a frame that holds no page.
const NoPage = -1

// A Frame is a slot of physical memory that can hold one page.
type Frame struct {
	Page     int
	Dirty    bool
	LoadTime int
	RefBits  uint32
}

// IsEmpty returns true if the frame does not hold any page.
func (f Frame) IsEmpty() bool {
	return f.Page == NoPage
}

// A FrameTable is the fixed set of frames that a single simulation run
// places pages into.
type FrameTable []Frame

// NewFrameTable returns a table of numFrames empty frames.
func NewFrameTable(numFrames int) FrameTable {
	t := make(FrameTable, numFrames)
	t.Reset()

	return t
}

// Reset marks all the frames in the table empty.
func (t FrameTable) Reset() {
	for i := range t {
		t[i] = Frame{Page: NoPage}
	}
}

// FindResident returns the index of the frame that holds the page. The
// second return value is false if the page is not resident.
func (t FrameTable) FindResident(page int) (int, bool) {
	for i, f := range t {
		if f.Page == page {
			return i, true
		}
	}

	return 0, false
}

// FindEmpty returns the index of the first empty frame. The second return
// value is false if every frame holds a page.
func (t FrameTable) FindEmpty() (int, bool) {
	for i, f := range t {
		if f.IsEmpty() {
			return i, true
		}
	}

	return 0, false
}

// Occupied returns the number of frames that hold a page.
func (t FrameTable) Occupied() int {
	n := 0

	for _, f := range t {
		if !f.IsEmpty() {
			n++
		}
	}

	return n
}

// Load places the referenced page into the frame at idx. The load time and
// the reference register are cleared; policies that use them set them after
// loading.
func (t FrameTable) Load(idx int, ref PageReference) {
	t[idx] = Frame{
		Page:  ref.Page,
		Dirty: ref.Dirty,
	}
}

// Touch records a hit on the frame at idx. A dirty reference makes the frame
// dirty; a clean reference never cleans it.
func (t FrameTable) Touch(idx int, ref PageReference) {
	if ref.Dirty {
		t[idx].Dirty = true
	}
}

// Clone returns a copy of the table that does not share frames with t.
func (t FrameTable) Clone() FrameTable {
	c := make(FrameTable, len(t))
	copy(c, t)

	return c
}
