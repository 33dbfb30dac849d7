package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/pagesim/mem/paging"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// Snapshot returns a copy of the counters that is safe to read.
func (b *ProgressBar) Snapshot() (total, finished, inProgress uint64) {
	b.Lock()
	defer b.Unlock()

	return b.Total, b.Finished, b.InProgress
}

// A ReferenceCounter is a simulator hook that advances a progress bar once
// per page reference, whether it hits or faults.
type ReferenceCounter struct {
	bar *ProgressBar
}

// Bar returns the progress bar the counter advances.
func (c *ReferenceCounter) Bar() *ProgressBar {
	return c.bar
}

// Func counts hits and faults.
func (c *ReferenceCounter) Func(ctx paging.HookCtx) {
	switch ctx.Pos {
	case paging.HookPosHit, paging.HookPosFault:
		c.bar.IncrementFinished(1)
	}
}
