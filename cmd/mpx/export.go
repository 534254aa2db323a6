package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	mpxerrors "mpx/internal/errors"
	"mpx/internal/export"
	"mpx/internal/output"
	"mpx/internal/paths"
	"mpx/internal/storage"
)

var (
	exportOutput   string
	exportGzip     bool
	exportPersist  bool
	exportMapPower bool
	exportFormat   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export measurement point rows",
	Long: `Assign measurement point identifiers and write one CSV row per
(identifier, quantity).

Existing identifiers are reused as they are. Records without one get a
generated identifier, which is written back to the database only when
persistence is enabled (export.persist_point_ids or --persist). A stored
identifier is never changed.

Examples:
  mpx export
  mpx export -o points.csv.gz
  mpx export --persist --format json
  mpx export -o - > points.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runExport(cmd))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (overrides export.output)")
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "Gzip the output")
	exportCmd.Flags().BoolVar(&exportPersist, "persist", false, "Write generated identifiers back (overrides export.persist_point_ids)")
	exportCmd.Flags().BoolVar(&exportMapPower, "map-power", true, "Report MW/MVAR/MVA/PF instead of CALC (overrides export.map_power_quantities)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "human", "Summary format (human, json, yaml)")
	rootCmd.AddCommand(exportCmd)
}

// ExportResponse is printed after a successful export.
type ExportResponse struct {
	RunID    string         `json:"runId" yaml:"runId"`
	Output   string         `json:"output" yaml:"output"`
	Checksum string         `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	Duration string         `json:"duration" yaml:"duration"`
	Summary  export.Summary `json:"summary" yaml:"summary"`
}

// exportOptions merges configuration and flags.
func exportOptions(cmd *cobra.Command, e *env) export.Options {
	opts := export.Options{
		Acronym:            e.cfg.Company.Acronym,
		ExcludePrefixes:    e.cfg.Naming.ExcludePrefixes,
		MapPowerQuantities: e.cfg.Export.MapPowerQuantities,
		Persist:            e.cfg.Export.PersistPointIDs,
	}
	if cmd.Flags().Changed("persist") {
		opts.Persist = exportPersist
	}
	if cmd.Flags().Changed("map-power") {
		opts.MapPowerQuantities = exportMapPower
	}
	return opts
}

func runExport(cmd *cobra.Command) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	outPath := e.cfg.Export.Output
	if exportOutput != "" {
		outPath = exportOutput
	}
	if outPath != output.Stdout {
		outPath = paths.Resolve(e.root, outPath, filepath.Join(e.root, "points.csv"))
	}

	db, err := openStore(e.root, e.cfg, e.logger)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := storage.NewMeasurementRepository(db)

	sink, err := output.Create(outPath, e.cfg.Export.Gzip || exportGzip)
	if err != nil {
		return mpxerrors.New(mpxerrors.OutputFailed, "failed to create output", err)
	}
	defer sink.Close()

	ctx, cancel := newContext()
	defer cancel()

	result, err := export.NewExporter(repo, repo, e.logger).Run(ctx, exportOptions(cmd, e), sink)
	if err != nil {
		return err
	}
	if err := sink.Commit(); err != nil {
		return mpxerrors.New(mpxerrors.OutputFailed, "failed to finish output", err)
	}

	run := &storage.Run{
		RunID:      result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Summary:    result.Summary,
		Output:     outPath,
		Checksum:   sink.Checksum(),
	}
	if err := storage.NewRunRepository(db).Create(ctx, run); err != nil {
		e.logger.Warn("Failed to record export run", "run", run.RunID, "error", err)
	}

	resp := &ExportResponse{
		RunID:    run.RunID,
		Output:   run.Output,
		Checksum: run.Checksum,
		Duration: run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
		Summary:  result.Summary,
	}
	var out io.Writer = os.Stdout
	if outPath == output.Stdout {
		out = os.Stderr
	}
	return printResponse(out, resp, exportFormat)
}

// printResponse formats resp and writes it to w.
func printResponse(w io.Writer, resp interface{}, format string) error {
	text, err := FormatResponse(resp, OutputFormat(format))
	if err != nil {
		return mpxerrors.New(mpxerrors.ConfigInvalid, "failed to format result", err)
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
