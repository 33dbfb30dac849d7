package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/report"
)

func newResultsCmd() *cobra.Command {
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Print the results recorded with --record.",
		Long: "`results --db NAME` prints the results stored in NAME.sqlite3, " +
			"one table per recorded sweep. --run-id and --sweep select rows.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			dbName, _ := cmd.Flags().GetString("db")
			runID, _ := cmd.Flags().GetString("run-id")
			sweep, _ := cmd.Flags().GetString("sweep")

			return printResults(cmd.Context(), dbName,
				datarecording.ResultFilter{RunID: runID, Sweep: sweep},
				cmd.OutOrStdout())
		},
	}

	resultsCmd.Flags().String("db", "",
		"Name of the database, without the .sqlite3 suffix.")
	resultsCmd.Flags().String("run-id", "", "Only print the rows of this run.")
	resultsCmd.Flags().String("sweep", "", "Only print the rows of this sweep.")
	_ = resultsCmd.MarkFlagRequired("db")

	return resultsCmd
}

func printResults(
	ctx context.Context,
	dbName string,
	filter datarecording.ResultFilter,
	out io.Writer,
) error {
	filename := dbName + ".sqlite3"
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("opening results: %w", err)
	}

	reader := datarecording.NewReader(filename)
	defer reader.Close()

	entries, err := datarecording.ReadResults(ctx, reader, filter)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		_, err = fmt.Fprintln(out, "No recorded results.")
		return err
	}

	return replay(entries, report.NewTableWriter(out))
}

// replay feeds the rows to a sink, starting a new sweep whenever the run or
// the sweep changes.
func replay(entries []datarecording.ResultEntry, sink experiment.Sink) error {
	var current *experiment.Sweep
	var last datarecording.ResultEntry

	for _, e := range entries {
		if current == nil || e.RunID != last.RunID || e.Sweep != last.Sweep {
			if current != nil {
				if err := sink.EndSweep(*current); err != nil {
					return err
				}
			}

			s := e.RecordedSweep()
			current = &s

			if err := sink.StartSweep(s); err != nil {
				return err
			}
		}

		if err := sink.Record(*current, e.Point()); err != nil {
			return err
		}

		last = e
	}

	return sink.EndSweep(*current)
}
