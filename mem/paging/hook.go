package paging

// HookPos names the site in a simulator where a hook is invoked.
type HookPos struct {
	Name string
}

var (
	// HookPosHit is invoked after a reference hits a resident page. Item is
	// the PageReference.
	HookPosHit = &HookPos{Name: "Hit"}

	// HookPosFault is invoked when a reference misses, before a frame is
	// chosen. Item is the PageReference.
	HookPosFault = &HookPos{Name: "Fault"}

	// HookPosEvict is invoked when a victim is selected and before it is
	// replaced. Item is the victim Frame and Detail is an EvictDetail whose
	// Table is the live frame table.
	HookPosEvict = &HookPos{Name: "Evict"}

	// HookPosAge is invoked after the clock simulator shifts every reference
	// register. Detail is the live FrameTable after the shift.
	HookPosAge = &HookPos{Name: "Age"}
)

// HookCtx holds the information about the site where a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Time   int
	Item   interface{}
	Detail interface{}
}

// EvictDetail describes an eviction.
type EvictDetail struct {
	FrameIndex int
	Table      FrameTable
}

// Hookable defines an object that accepts hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// A Hook observes a simulator. Hooks must not modify the frame table or the
// trace they are given. A frame table in Detail is only valid during the
// call; hooks that keep it must Clone it.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase implements the Hookable interface for the simulators.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, registered := range h.hookList {
		if registered == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook triggers the registered hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
