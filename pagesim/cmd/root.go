// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/mem/paging"
	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/report"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagesim <FIFO|OPT|CLK>",
		Short: "pagesim replays a page reference trace under a replacement policy.",
		Long: `pagesim reads a page reference trace from the standard input ` +
			`and counts the page faults and write-backs of a replacement ` +
			`policy over a range of parameters. FIFO and OPT vary the number ` +
			`of frames. CLK varies the reference register width and the ` +
			`aging interval.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}

			_, err := paging.ParsePolicy(args[0])

			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			policy, _ := paging.ParsePolicy(args[0])

			cfg, err := configFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			return run(policy, cfg, cmd.InOrStdin(), cmd.OutOrStdout(),
				cmd.ErrOrStderr())
		},
	}

	registerFlags(rootCmd.Flags())
	rootCmd.AddCommand(newResultsCmd())

	return rootCmd
}

// Execute runs the root command and exits. The exit runs the registered
// atexit handlers so that recorders flush.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func run(
	policy paging.Policy,
	cfg Config,
	in io.Reader,
	out, errOut io.Writer,
) error {
	logger := log.New(errOut, "", 0)

	refs, err := trace.NewReader(in).
		WithLogger(logger).
		WithMaxPages(cfg.MaxPages).
		Read()
	if err != nil {
		return err
	}

	fmt.Fprintf(errOut, "Successfully read %d page references\n", len(refs))

	d, err := experiment.NewDriver(policy, experiment.DefaultConfig())
	if err != nil {
		return err
	}

	d.AddSink(report.NewTableWriter(out))

	csv := report.NewCSVWriter(cfg.ResultsDir).WithLogger(logger)
	defer csv.Close()
	d.AddSink(csv)

	if cfg.Record {
		recorder := datarecording.New(cfg.DBName)
		defer recorder.Close()

		d.AddSink(datarecording.NewResultRecorder(recorder))
	}

	if cfg.Monitor {
		m := monitoring.NewMonitor().
			WithPortNumber(cfg.MonitorPort).
			WithOpenBrowser(cfg.OpenBrowser)
		m.StartServer()

		d.AddSink(m)
		d.AcceptHook(m.TrackReferences(uint64(len(refs) * d.NumPoints())))
	}

	_, err = d.Run(refs)

	return err
}
