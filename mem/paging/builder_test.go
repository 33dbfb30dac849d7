package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should parse policy names", func() {
		p, err := ParsePolicy("OPT")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(Equal(Optimal))

		_, err = ParsePolicy("opt")
		Expect(err).To(MatchError(ErrUnknownPolicy))

		_, err = ParsePolicy("LRU")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should build a simulator for every policy", func() {
		b := MakeBuilder().WithNumFrames(3)

		fifo, err := b.Build(FIFO)
		Expect(err).ToNot(HaveOccurred())
		Expect(fifo).To(BeAssignableToTypeOf(&FIFOSimulator{}))

		opt, err := b.Build(Optimal)
		Expect(err).ToNot(HaveOccurred())
		Expect(opt).To(BeAssignableToTypeOf(&OptimalSimulator{}))

		clk, err := b.Build(Clock)
		Expect(err).ToNot(HaveOccurred())
		Expect(clk).To(BeAssignableToTypeOf(&ClockSimulator{}))
	})

	It("should pass clock parameters through", func() {
		s, err := MakeBuilder().
			WithNumFrames(2).
			WithRegisterWidth(2).
			WithAgingInterval(2).
			Build(Clock)
		Expect(err).ToNot(HaveOccurred())

		res, err := s.Simulate(refs(1, 2, 1, 3))

		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal(Result{Frames: 2, PageFaults: 3}))
	})

	It("should reject invalid parameters when building", func() {
		_, err := MakeBuilder().WithNumFrames(0).Build(FIFO)
		Expect(err).To(MatchError(ErrInvalidFrameCount))

		_, err = MakeBuilder().WithRegisterWidth(40).Build(Clock)
		Expect(err).To(MatchError(ErrInvalidRegisterWidth))

		_, err = MakeBuilder().WithAgingInterval(-1).Build(Clock)
		Expect(err).To(MatchError(ErrInvalidAgingInterval))

		_, err = MakeBuilder().Build(Policy("LRU"))
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should ignore clock parameters for other policies", func() {
		_, err := MakeBuilder().WithRegisterWidth(40).Build(FIFO)

		Expect(err).ToNot(HaveOccurred())
	})

	It("should register hooks on built simulators", func() {
		hook := &evictRecorder{}

		s, err := MakeBuilder().WithNumFrames(1).WithHook(hook).Build(FIFO)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.NumHooks()).To(Equal(1))

		_, err = s.Simulate(refs(1, 2))
		Expect(err).ToNot(HaveOccurred())
		Expect(hook.victimPages()).To(Equal([]int{1}))
	})

	It("should not share hooks between builders", func() {
		base := MakeBuilder().WithHook(&evictRecorder{})
		a := base.WithHook(&evictRecorder{})
		b := base.WithHook(&evictRecorder{})

		sa, err := a.Build(FIFO)
		Expect(err).ToNot(HaveOccurred())
		sb, err := b.Build(FIFO)
		Expect(err).ToNot(HaveOccurred())

		Expect(sa.Hooks()[1]).ToNot(BeIdenticalTo(sb.Hooks()[1]))
	})
})

var _ = Describe("HookableBase", func() {
	It("should refuse a hook registered twice", func() {
		h := &evictRecorder{}
		s := NewFIFOSimulator(1)
		s.AcceptHook(h)

		Expect(func() { s.AcceptHook(h) }).To(Panic())
	})
})
