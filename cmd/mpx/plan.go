package main

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"mpx/internal/export"
	"mpx/internal/storage"
)

var planFormat string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show which identifiers an export would generate",
	Long: `Load the measurement records and report, without writing anything, which
identifiers would be kept, generated or excluded.

Examples:
  mpx plan
  mpx plan --format yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runPlan())
	},
}

func init() {
	planCmd.Flags().StringVar(&planFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(planCmd)
}

// PlanResponse describes a dry run.
type PlanResponse struct {
	TotalRecords int           `json:"totalRecords" yaml:"totalRecords"`
	Kept         int           `json:"kept" yaml:"kept"`
	Unnameable   int           `json:"unnameable" yaml:"unnameable"`
	Excluded     []string      `json:"excluded" yaml:"excluded"`
	Generated    []GeneratedID `json:"generated" yaml:"generated"`
}

// GeneratedID is one identifier the export would create.
type GeneratedID struct {
	SignalID string `json:"signalId" yaml:"signalId"`
	PointTag string `json:"pointTag" yaml:"pointTag"`
	PointID  string `json:"pointId" yaml:"pointId"`
}

func runPlan() error {
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

	opts := export.Options{
		Acronym:         e.cfg.Company.Acronym,
		ExcludePrefixes: e.cfg.Naming.ExcludePrefixes,
	}
	plan, total, err := export.NewExporter(storage.NewMeasurementRepository(db), nil, e.logger).Plan(ctx, opts)
	if err != nil {
		return err
	}
	return printResponse(os.Stdout, planResponse(plan, total), planFormat)
}

func planResponse(plan *export.Plan, total int) *PlanResponse {
	resp := &PlanResponse{
		TotalRecords: total,
		Unnameable:   plan.Unnameable,
		Excluded:     make([]string, 0, len(plan.Excluded)),
		Generated:    make([]GeneratedID, 0, len(plan.Generated)),
	}
	for _, rec := range plan.Ordered {
		id, generated := plan.Generated[rec.SignalID]
		switch {
		case plan.IsExcluded(rec.SignalID):
			resp.Excluded = append(resp.Excluded, rec.SignalID)
		case generated:
			resp.Generated = append(resp.Generated, GeneratedID{SignalID: rec.SignalID, PointTag: rec.PointTag, PointID: id})
		default:
			if _, ok := plan.Base(rec); ok {
				resp.Kept++
			}
		}
	}
	sort.Strings(resp.Excluded)
	return resp
}
