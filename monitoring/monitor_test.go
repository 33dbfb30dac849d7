package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/mem/paging"
)

func get(h http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		m     *Monitor
		sweep experiment.Sweep
	)

	BeforeEach(func() {
		m = NewMonitor()
		sweep = experiment.Sweep{
			Name:      "fifo",
			Title:     "FIFO",
			Policy:    paging.FIFO,
			ParamName: "Frames",
			Values:    experiment.Range(1, 3),
			Vary:      experiment.VaryFrames,
		}
	})

	It("should fall back to a random port below 1000", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should create and complete progress bars", func() {
		a := m.CreateProgressBar("a", 10)
		b := m.CreateProgressBar("b", 20)

		Expect(m.ProgressBars()).To(Equal([]*ProgressBar{a, b}))

		m.CompleteProgressBar(a)

		Expect(m.ProgressBars()).To(Equal([]*ProgressBar{b}))
	})

	It("should track a sweep as a sink", func() {
		Expect(m.StartSweep(sweep)).To(Succeed())

		bars := m.ProgressBars()
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("FIFO"))
		Expect(bars[0].Total).To(Equal(uint64(3)))

		p := experiment.Point{
			Param:  1,
			Result: paging.Result{Frames: 1, PageFaults: 6, WriteBacks: 1},
		}
		Expect(m.Record(sweep, p)).To(Succeed())

		_, finished, _ := bars[0].Snapshot()
		Expect(finished).To(Equal(uint64(1)))

		Expect(m.EndSweep(sweep)).To(Succeed())
		Expect(m.ProgressBars()).To(BeEmpty())

		rec, found := m.Sweep("fifo")
		Expect(found).To(BeTrue())
		Expect(rec.Done).To(BeTrue())
		Expect(rec.Points).To(Equal([]experiment.Point{p}))
		Expect(m.SweepNames()).To(Equal([]string{"fifo"}))
	})

	It("should reject points of a sweep that was not started", func() {
		Expect(m.Record(sweep, experiment.Point{})).NotTo(Succeed())
		Expect(m.EndSweep(sweep)).NotTo(Succeed())
	})

	It("should count references with a hook", func() {
		counter := m.TrackReferences(5)

		counter.Func(paging.HookCtx{Pos: paging.HookPosHit})
		counter.Func(paging.HookCtx{Pos: paging.HookPosFault})
		counter.Func(paging.HookCtx{Pos: paging.HookPosEvict})
		counter.Func(paging.HookCtx{Pos: paging.HookPosAge})

		total, finished, _ := counter.Bar().Snapshot()
		Expect(total).To(Equal(uint64(5)))
		Expect(finished).To(Equal(uint64(2)))
	})

	It("should count every reference of a driver run", func() {
		cfg := experiment.DefaultConfig()
		cfg.MaxFrames = 2

		d := experiment.NewFIFODriver(cfg)
		trace := paging.Trace{{Page: 1}, {Page: 2}, {Page: 1}}
		counter := m.TrackReferences(uint64(len(trace) * d.NumPoints()))
		d.AcceptHook(counter)
		d.AddSink(m)

		_, err := d.Run(trace)

		Expect(err).NotTo(HaveOccurred())
		total, finished, _ := counter.Bar().Snapshot()
		Expect(finished).To(Equal(total))
	})

	Context("when serving", func() {
		var h http.Handler

		BeforeEach(func() {
			h = m.Handler()
			Expect(m.StartSweep(sweep)).To(Succeed())
			Expect(m.Record(sweep, experiment.Point{
				Param:  1,
				Result: paging.Result{Frames: 1, PageFaults: 6},
			})).To(Succeed())
		})

		It("should list progress bars", func() {
			rsp := get(h, "/api/progress")

			Expect(rsp.Code).To(Equal(http.StatusOK))

			var bars []progressRsp
			Expect(json.Unmarshal(rsp.Body.Bytes(), &bars)).To(Succeed())
			Expect(bars).To(HaveLen(1))
			Expect(bars[0].Name).To(Equal("FIFO"))
			Expect(bars[0].Finished).To(Equal(uint64(1)))
			Expect(bars[0].Total).To(Equal(uint64(3)))
		})

		It("should list sweeps", func() {
			rsp := get(h, "/api/sweeps")

			var names []string
			Expect(json.Unmarshal(rsp.Body.Bytes(), &names)).To(Succeed())
			Expect(names).To(Equal([]string{"fifo"}))
		})

		It("should serialize a sweep", func() {
			rsp := get(h, "/api/sweep/fifo")

			Expect(rsp.Code).To(Equal(http.StatusOK))
			Expect(rsp.Body.String()).To(ContainSubstring("FIFO"))
		})

		It("should report unknown sweeps", func() {
			rsp := get(h, "/api/sweep/lru")

			Expect(rsp.Code).To(Equal(http.StatusNotFound))
		})

		It("should report resource usage", func() {
			rsp := get(h, "/api/resource")

			var res resourceRsp
			Expect(json.Unmarshal(rsp.Body.Bytes(), &res)).To(Succeed())
			Expect(res.MemorySize).To(BeNumerically(">", 0))
		})

		It("should serve the web page", func() {
			rsp := get(h, "/")

			Expect(rsp.Code).To(Equal(http.StatusOK))
			Expect(rsp.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
		})
	})
})
