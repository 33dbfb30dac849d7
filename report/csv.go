package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/sarchlab/pagesim/experiment"
	"github.com/tebeka/atexit"
)

// DefaultResultDir is where result files are written if no directory is
// given.
const DefaultResultDir = "results/data"

// CSVWriter exports every sweep into its own CSV file in a directory. The
// file of a sweep is overwritten if it exists.
type CSVWriter struct {
	dir    string
	logger *log.Logger

	file       *os.File
	points     []experiment.Point
	bufferSize int
}

// NewCSVWriter creates a CSVWriter that writes into dir.
func NewCSVWriter(dir string) *CSVWriter {
	if dir == "" {
		dir = DefaultResultDir
	}

	w := &CSVWriter{
		dir:        dir,
		logger:     log.New(os.Stderr, "", 0),
		bufferSize: 64,
	}

	atexit.Register(func() {
		err := w.Close()
		if err != nil {
			w.logger.Printf("Warning: closing %s: %v", w.dir, err)
		}
	})

	return w
}

// WithLogger sets the logger that receives warnings.
func (w *CSVWriter) WithLogger(logger *log.Logger) *CSVWriter {
	w.logger = logger
	return w
}

// Dir returns the output directory.
func (w *CSVWriter) Dir() string {
	return w.dir
}

// Path returns the file a sweep is exported to.
func (w *CSVWriter) Path(s experiment.Sweep) string {
	return filepath.Join(w.dir, s.CSVFile)
}

// StartSweep creates the file of the sweep and writes the header. A file that
// cannot be created is reported as a warning and the sweep is not exported.
func (w *CSVWriter) StartSweep(s experiment.Sweep) error {
	if err := w.Close(); err != nil {
		return err
	}

	path := w.Path(s)

	err := os.MkdirAll(w.dir, 0o755)
	if err != nil {
		w.logger.Printf("Warning: could not create %s: %v", w.dir, err)
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		w.logger.Printf("Warning: could not open %s for writing: %v", path, err)
		return nil
	}

	w.file = file

	_, err = fmt.Fprintf(w.file, "%s,PageFaults,WriteBack\n", s.ParamName)

	return err
}

// Record buffers a row.
func (w *CSVWriter) Record(_ experiment.Sweep, p experiment.Point) error {
	if w.file == nil {
		return nil
	}

	w.points = append(w.points, p)
	if len(w.points) >= w.bufferSize {
		return w.Flush()
	}

	return nil
}

// EndSweep writes the buffered rows and closes the file.
func (w *CSVWriter) EndSweep(_ experiment.Sweep) error {
	return w.Close()
}

// Flush writes the buffered rows to the file.
func (w *CSVWriter) Flush() error {
	if w.file == nil {
		w.points = nil
		return nil
	}

	for _, p := range w.points {
		_, err := fmt.Fprintf(w.file, "%d,%d,%d\n",
			p.Param,
			p.Result.PageFaults,
			p.Result.WriteBacks,
		)
		if err != nil {
			return err
		}
	}

	w.points = nil

	return nil
}

// Close flushes and closes the file of the current sweep, if any.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.Flush()

	closeErr := w.file.Close()
	w.file = nil

	if err != nil {
		return err
	}

	return closeErr
}
