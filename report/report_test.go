package report

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/mem/paging"
)

func point(param, faults, writeBacks int) experiment.Point {
	return experiment.Point{
		Param: param,
		Result: paging.Result{
			Frames:     param,
			PageFaults: faults,
			WriteBacks: writeBacks,
		},
	}
}

var sweep = experiment.Sweep{
	Name:      "fifo",
	Title:     "FIFO",
	ParamName: "Frames",
	CSVFile:   "fifo_results.csv",
}

var _ = Describe("TableWriter", func() {
	It("should print a bordered table", func() {
		buf := new(bytes.Buffer)
		t := NewTableWriter(buf)

		Expect(t.StartSweep(sweep)).To(Succeed())
		Expect(t.Record(sweep, point(1, 120, 7))).To(Succeed())
		Expect(t.EndSweep(sweep)).To(Succeed())

		Expect(buf.String()).To(Equal("\nFIFO\n" +
			"+----------+----------------+-----------------+\n" +
			"| Frames   | Page Faults    | Write-backs     |\n" +
			"+----------+----------------+-----------------+\n" +
			"| 1        | 120            | 7               |\n" +
			"+----------+----------------+-----------------+\n"))
	})
})

var _ = Describe("CSVWriter", func() {
	var (
		dir    string
		logBuf *bytes.Buffer
		w      *CSVWriter
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "results", "data")
		logBuf = new(bytes.Buffer)
		w = NewCSVWriter(dir).WithLogger(log.New(logBuf, "", 0))
	})

	It("should create the directory and write a header and rows", func() {
		Expect(w.StartSweep(sweep)).To(Succeed())
		Expect(w.Record(sweep, point(1, 10, 2))).To(Succeed())
		Expect(w.Record(sweep, point(2, 8, 1))).To(Succeed())
		Expect(w.EndSweep(sweep)).To(Succeed())

		content, err := os.ReadFile(filepath.Join(dir, "fifo_results.csv"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal(
			"Frames,PageFaults,WriteBack\n1,10,2\n2,8,1\n"))
	})

	It("should flush when the buffer is full", func() {
		Expect(w.StartSweep(sweep)).To(Succeed())
		for i := 1; i <= 70; i++ {
			Expect(w.Record(sweep, point(i, i, 0))).To(Succeed())
		}

		content, err := os.ReadFile(w.Path(sweep))
		Expect(err).ToNot(HaveOccurred())
		Expect(bytes.Count(content, []byte("\n"))).To(Equal(65))

		Expect(w.EndSweep(sweep)).To(Succeed())
		content, err = os.ReadFile(w.Path(sweep))
		Expect(err).ToNot(HaveOccurred())
		Expect(bytes.Count(content, []byte("\n"))).To(Equal(71))
	})

	It("should overwrite an existing file", func() {
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		Expect(os.WriteFile(w.Path(sweep), []byte("old\n"), 0o644)).To(Succeed())

		Expect(w.StartSweep(sweep)).To(Succeed())
		Expect(w.EndSweep(sweep)).To(Succeed())

		content, err := os.ReadFile(w.Path(sweep))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(Equal("Frames,PageFaults,WriteBack\n"))
	})

	It("should warn and skip the sweep if the file cannot be opened", func() {
		Expect(os.MkdirAll(w.Path(sweep), 0o755)).To(Succeed())

		Expect(w.StartSweep(sweep)).To(Succeed())
		Expect(w.Record(sweep, point(1, 1, 0))).To(Succeed())
		Expect(w.EndSweep(sweep)).To(Succeed())

		Expect(logBuf.String()).To(ContainSubstring("could not open"))
	})

	It("should use the default directory", func() {
		Expect(NewCSVWriter("").Dir()).To(Equal(DefaultResultDir))
	})
})
