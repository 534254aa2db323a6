package main

import (
	"os"

	"github.com/spf13/cobra"

	mpxerrors "mpx/internal/errors"
	"mpx/internal/storage"
)

var (
	runsLimit  int
	runsFormat string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent export runs",
	Long: `List the export run ledger, newest first, with counts and the output
checksum of each run.

Examples:
  mpx runs
  mpx runs --limit 5 --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runRuns())
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs")
	runsCmd.Flags().StringVar(&runsFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(runsCmd)
}

// RunsResponse lists ledger entries.
type RunsResponse struct {
	Runs []storage.Run `json:"runs" yaml:"runs"`
}

func runRuns() error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	db, err := openStore(e.root, e.cfg, e.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := newContext()
	defer cancel()

	runs, err := storage.NewRunRepository(db).ListRecent(ctx, runsLimit)
	if err != nil {
		return mpxerrors.New(mpxerrors.QueryFailed, "failed to list runs", err)
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	return printResponse(os.Stdout, &RunsResponse{Runs: runs}, runsFormat)
}
