package paging

// ClockSimulator implements second chance with an n-bit reference register
// per frame. Every agingInterval references all registers are shifted right
// by one bit, so a page that is not referenced again loses its protection
// after at most n shifts.
type ClockSimulator struct {
	HookableBase

	numFrames     int
	registerWidth int
	agingInterval int
}

// NewClockSimulator creates a clock simulator.
func NewClockSimulator(
	numFrames int,
	registerWidth int,
	agingInterval int,
) *ClockSimulator {
	return &ClockSimulator{
		numFrames:     numFrames,
		registerWidth: registerWidth,
		agingInterval: agingInterval,
	}
}

// clockState is the state of one Simulate call. It starts fresh on every
// call.
type clockState struct {
	*replay

	finder     *ClockVictimFinder
	refCounter int
	highBit    uint32
}

// Simulate replays the trace.
func (s *ClockSimulator) Simulate(trace Trace) (Result, error) {
	if err := s.validate(); err != nil {
		return Result{}, err
	}

	st := &clockState{
		replay:  newReplay(s, s.numFrames),
		finder:  NewClockVictimFinder(),
		highBit: uint32(1) << (s.registerWidth - 1),
	}

	for now, ref := range trace {
		if st.refCounter >= s.agingInterval {
			st.age(now)
			st.refCounter = 0
		}

		st.reference(now, ref)
		st.refCounter++
	}

	return st.result, nil
}

func (s *ClockSimulator) validate() error {
	if err := validateNumFrames(s.numFrames); err != nil {
		return err
	}

	if err := validateRegisterWidth(s.registerWidth); err != nil {
		return err
	}

	return validateAgingInterval(s.agingInterval)
}

func (st *clockState) reference(now int, ref PageReference) {
	if idx, ok := st.table.FindResident(ref.Page); ok {
		st.table[idx].RefBits |= st.highBit
		st.hit(now, idx, ref)

		return
	}

	st.fault(now, ref)

	idx, ok := st.table.FindEmpty()
	if ok {
		st.finder.FilledEmpty(idx, len(st.table))
	} else {
		idx = st.finder.FindVictim(st.table, now)
		st.evict(now, idx)
	}

	st.table.Load(idx, ref)
	st.table[idx].RefBits = st.highBit
}

// age shifts the register of every occupied frame right by one bit.
func (st *clockState) age(now int) {
	for i := range st.table {
		if !st.table[i].IsEmpty() {
			st.table[i].RefBits >>= 1
		}
	}

	if st.observed() {
		st.owner.InvokeHook(HookCtx{
			Domain: st.owner,
			Pos:    HookPosAge,
			Time:   now,
			Detail: st.table,
		})
	}
}
