package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	mpxerrors "mpx/internal/errors"
	"mpx/internal/storage"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import <measurements.csv>",
	Short: "Load measurement metadata from CSV",
	Long: `Insert or update measurement records from a CSV file, keyed by signal_id.

Recognized columns: signal_id (required), point_tag, point_id, device,
description, signal_type, phase, phasor_type, phasor_label. Other columns are
ignored. A stored point_id is never cleared or replaced.

Examples:
  mpx import measurements.csv
  cat measurements.csv | mpx import -`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runImport(args[0]))
	},
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(importCmd)
}

// ImportResponse reports an import.
type ImportResponse struct {
	Source string              `json:"source" yaml:"source"`
	Stats  storage.ImportStats `json:"stats" yaml:"stats"`
	Total  int                 `json:"total" yaml:"total"`
}

func runImport(source string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	var in io.Reader = os.Stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return mpxerrors.New(mpxerrors.ImportFailed, "failed to open import file", err)
		}
		defer f.Close()
		in = f
	}

	db, err := openStore(e.root, e.cfg, e.logger)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := storage.NewMeasurementRepository(db)

	ctx, cancel := newContext()
	defer cancel()

	stats, err := repo.ImportCSV(ctx, in)
	if err != nil {
		return mpxerrors.New(mpxerrors.ImportFailed, "failed to import measurements", err).
			WithDetails(map[string]string{"source": source})
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return mpxerrors.New(mpxerrors.QueryFailed, "failed to count measurements", err)
	}
	return printResponse(os.Stdout, &ImportResponse{Source: source, Stats: stats, Total: total}, importFormat)
}
