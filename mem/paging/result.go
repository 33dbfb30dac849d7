package paging

// Result is the outcome of replaying a trace with one configuration.
type Result struct {
	Frames     int
	PageFaults int
	WriteBacks int
}
