package paging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameTable", func() {
	var table FrameTable

	BeforeEach(func() {
		table = NewFrameTable(4)
	})

	It("should start with every frame empty", func() {
		Expect(table).To(HaveLen(4))
		for _, f := range table {
			Expect(f.IsEmpty()).To(BeTrue())
			Expect(f.Dirty).To(BeFalse())
			Expect(f.RefBits).To(BeZero())
		}
		Expect(table.Occupied()).To(Equal(0))
	})

	It("should not find a page that is not resident", func() {
		_, ok := table.FindResident(3)
		Expect(ok).To(BeFalse())
	})

	It("should find a resident page", func() {
		table.Load(2, PageReference{Page: 7, Dirty: true})

		idx, ok := table.FindResident(7)

		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(2))
		Expect(table[idx].Dirty).To(BeTrue())
	})

	It("should find the first empty frame", func() {
		table.Load(0, PageReference{Page: 1})
		table.Load(2, PageReference{Page: 2})

		idx, ok := table.FindEmpty()

		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(1))
	})

	It("should report a full table", func() {
		for i := range table {
			table.Load(i, PageReference{Page: i})
		}

		_, ok := table.FindEmpty()

		Expect(ok).To(BeFalse())
		Expect(table.Occupied()).To(Equal(4))
	})

	It("should clear load time and register on load", func() {
		table[1] = Frame{Page: 3, Dirty: true, LoadTime: 9, RefBits: 0xff}

		table.Load(1, PageReference{Page: 5})

		Expect(table[1]).To(Equal(Frame{Page: 5}))
	})

	It("should keep a frame dirty on a clean hit", func() {
		table.Load(0, PageReference{Page: 1, Dirty: true})

		table.Touch(0, PageReference{Page: 1})

		Expect(table[0].Dirty).To(BeTrue())
	})

	It("should make a frame dirty on a dirty hit", func() {
		table.Load(0, PageReference{Page: 1})

		table.Touch(0, PageReference{Page: 1, Dirty: true})

		Expect(table[0].Dirty).To(BeTrue())
	})

	It("should clone without sharing frames", func() {
		table.Load(0, PageReference{Page: 1})

		c := table.Clone()
		c[0].Page = 2

		Expect(table[0].Page).To(Equal(1))
	})

	It("should reset a used table", func() {
		table.Load(0, PageReference{Page: 1, Dirty: true})
		table[0].RefBits = 3

		table.Reset()

		Expect(table.Occupied()).To(Equal(0))
		Expect(table[0]).To(Equal(Frame{Page: NoPage}))
	})
})

var _ = Describe("Trace", func() {
	It("should find the next use strictly after a position", func() {
		t := refs(1, 2, 1, 3, 1)

		next, ok := t.NextUse(1, 0)
		Expect(ok).To(BeTrue())
		Expect(next).To(Equal(2))

		next, ok = t.NextUse(1, 2)
		Expect(ok).To(BeTrue())
		Expect(next).To(Equal(4))
	})

	It("should report a page that is never used again", func() {
		t := refs(1, 2, 1, 3)

		_, ok := t.NextUse(2, 1)

		Expect(ok).To(BeFalse())
	})

	It("should count distinct pages", func() {
		Expect(refs(1, 2, 1, 3, 2).DistinctPages()).To(Equal(3))
		Expect(Trace{}.DistinctPages()).To(Equal(0))
	})
})
