package paging

import "fmt"

// A Simulator replays a page reference trace against a frame table that it
// creates for the run and reports the faults and write-backs it counted.
type Simulator interface {
	Hookable

	// Simulate replays the whole trace. The trace is not modified.
	Simulate(trace Trace) (Result, error)
}

type hookInvoker interface {
	Hookable
	InvokeHook(ctx HookCtx)
}

// replay is the state shared by every policy during one Simulate call.
type replay struct {
	owner  hookInvoker
	table  FrameTable
	result Result
}

func newReplay(owner hookInvoker, numFrames int) *replay {
	return &replay{
		owner:  owner,
		table:  NewFrameTable(numFrames),
		result: Result{Frames: numFrames},
	}
}

func (r *replay) observed() bool {
	return r.owner.NumHooks() > 0
}

func (r *replay) hit(now, idx int, ref PageReference) {
	r.table.Touch(idx, ref)

	if r.observed() {
		r.owner.InvokeHook(HookCtx{
			Domain: r.owner,
			Pos:    HookPosHit,
			Time:   now,
			Item:   ref,
		})
	}
}

func (r *replay) fault(now int, ref PageReference) {
	r.result.PageFaults++

	if r.observed() {
		r.owner.InvokeHook(HookCtx{
			Domain: r.owner,
			Pos:    HookPosFault,
			Time:   now,
			Item:   ref,
		})
	}
}

func (r *replay) evict(now, idx int) {
	victim := r.table[idx]
	if victim.Dirty {
		r.result.WriteBacks++
	}

	if r.observed() {
		r.owner.InvokeHook(HookCtx{
			Domain: r.owner,
			Pos:    HookPosEvict,
			Time:   now,
			Item:   victim,
			Detail: EvictDetail{FrameIndex: idx, Table: r.table},
		})
	}
}

func validateNumFrames(numFrames int) error {
	if numFrames < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrameCount, numFrames)
	}

	return nil
}

func validateRegisterWidth(width int) error {
	if width < 1 || width > 32 {
		return fmt.Errorf("%w, got %d", ErrInvalidRegisterWidth, width)
	}

	return nil
}

func validateAgingInterval(interval int) error {
	if interval < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidAgingInterval, interval)
	}

	return nil
}
