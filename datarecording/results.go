package datarecording

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/mem/paging"
)

// ResultTable is the table the ResultRecorder writes into.
const ResultTable = "results"

// ResultEntry is one row of the result table.
type ResultEntry struct {
	RunID         string
	Policy        string
	Sweep         string
	ParamName     string
	Param         int
	Frames        int
	RegisterWidth int
	AgingInterval int
	PageFaults    int
	WriteBacks    int
}

// RecordedSweep returns the sweep the row belongs to, titled with its policy
// and run.
func (e ResultEntry) RecordedSweep() experiment.Sweep {
	return experiment.Sweep{
		Name:      e.Sweep,
		Title:     fmt.Sprintf("%s %s (run %s)", e.Policy, e.Sweep, e.RunID),
		Policy:    paging.Policy(e.Policy),
		ParamName: e.ParamName,
	}
}

// Point returns the sweep point stored in the row.
func (e ResultEntry) Point() experiment.Point {
	return experiment.Point{
		Param: e.Param,
		Result: paging.Result{
			Frames:     e.Frames,
			PageFaults: e.PageFaults,
			WriteBacks: e.WriteBacks,
		},
	}
}

// ResultFilter selects rows of the result table. Empty fields match every
// row.
type ResultFilter struct {
	RunID string
	Sweep string
}

// ReadResults returns the rows of the result table that match filter, in the
// order they were recorded.
func ReadResults(
	ctx context.Context,
	reader DataReader,
	filter ResultFilter,
) ([]ResultEntry, error) {
	reader.MapTable(ResultTable, ResultEntry{})

	var conds []string
	var args []any

	if filter.RunID != "" {
		conds = append(conds, "RunID = ?")
		args = append(args, filter.RunID)
	}

	if filter.Sweep != "" {
		conds = append(conds, "Sweep = ?")
		args = append(args, filter.Sweep)
	}

	rows, _, err := reader.Query(ctx, ResultTable, QueryParams{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: "rowid",
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ResultTable, err)
	}

	entries := make([]ResultEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, *row.(*ResultEntry))
	}

	return entries, nil
}

// ResultRecorder is an experiment sink that stores every point of every
// sweep in a DataRecorder. The rows of one run share a RunID.
type ResultRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewResultRecorder creates the result table in recorder, unless an earlier
// ResultRecorder did, and returns a sink writing to it under a new RunID.
func NewResultRecorder(recorder DataRecorder) *ResultRecorder {
	if !slices.Contains(recorder.ListTables(), ResultTable) {
		recorder.CreateTable(ResultTable, ResultEntry{})
	}

	return &ResultRecorder{
		recorder: recorder,
		runID:    xid.New().String(),
	}
}

// RunID returns the identifier stored with every row of this run.
func (r *ResultRecorder) RunID() string {
	return r.runID
}

// StartSweep does nothing.
func (r *ResultRecorder) StartSweep(_ experiment.Sweep) error {
	return nil
}

// Record buffers one row.
func (r *ResultRecorder) Record(s experiment.Sweep, p experiment.Point) error {
	_, registerWidth, agingInterval := s.Parameters(p.Param)

	entry := ResultEntry{
		RunID:         r.runID,
		Policy:        string(s.Policy),
		Sweep:         s.Name,
		ParamName:     s.ParamName,
		Param:         p.Param,
		Frames:        p.Result.Frames,
		RegisterWidth: registerWidth,
		AgingInterval: agingInterval,
		PageFaults:    p.Result.PageFaults,
		WriteBacks:    p.Result.WriteBacks,
	}

	r.recorder.InsertData(ResultTable, entry)

	return nil
}

// EndSweep writes the rows of the sweep to the database.
func (r *ResultRecorder) EndSweep(_ experiment.Sweep) error {
	r.recorder.Flush()
	return nil
}
