// Package report prints and exports the results of experiment sweeps.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/experiment"
)

const tableBorder = "+----------+----------------+-----------------+\n"

// TableWriter prints one bordered table per sweep.
type TableWriter struct {
	w io.Writer
}

// NewTableWriter creates a TableWriter that prints to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w}
}

// StartSweep prints the title and the header of the table.
func (t *TableWriter) StartSweep(s experiment.Sweep) error {
	_, err := fmt.Fprintf(t.w, "\n%s\n%s| %-8s | %-14s | %-15s |\n%s",
		s.Title,
		tableBorder,
		s.ParamName, "Page Faults", "Write-backs",
		tableBorder,
	)

	return err
}

// Record prints one row.
func (t *TableWriter) Record(_ experiment.Sweep, p experiment.Point) error {
	_, err := fmt.Fprintf(t.w, "| %-8d | %-14d | %-15d |\n%s",
		p.Param, p.Result.PageFaults, p.Result.WriteBacks, tableBorder)

	return err
}

// EndSweep does nothing; every row already closes the table.
func (t *TableWriter) EndSweep(_ experiment.Sweep) error {
	return nil
}
