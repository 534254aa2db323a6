package main

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mpx/internal/config"
	"mpx/internal/output"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	FormatHuman OutputFormat = "human"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
)

// FormatResponse renders resp in the requested format.
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatTOML:
		return formatTOML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := output.EncodeJSON(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatTOML(resp interface{}) (string, error) {
	data, err := toml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ExportResponse:
		return formatExportHuman(v), nil
	case *PlanResponse:
		return formatPlanHuman(v), nil
	case *ImportResponse:
		return formatImportHuman(v), nil
	case *RunsResponse:
		return formatRunsHuman(v), nil
	case *config.Config:
		return formatTOML(v)
	default:
		return formatJSON(resp)
	}
}

func formatExportHuman(r *ExportResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", r.RunID)
	fmt.Fprintf(&b, "  Output:      %s\n", r.Output)
	if r.Checksum != "" {
		fmt.Fprintf(&b, "  BLAKE2b-256: %s\n", r.Checksum)
	}
	fmt.Fprintf(&b, "  Duration:    %s\n\n", r.Duration)
	writeSummary(&b, r.Summary.TotalRecords, []summaryLine{
		{"Rows emitted", r.Summary.RowsEmitted},
		{"Identifiers generated", r.Summary.Generated},
		{"Identifiers persisted", r.Summary.Persisted},
		{"Persist skipped (already set)", r.Summary.PersistSkipped},
		{"Excluded (identifier too long)", r.Summary.ExcludedTooLong},
		{"Skipped (no usable name)", r.Summary.Unnameable},
		{"Duplicate rows dropped", r.Summary.DuplicatesDropped},
	})
	return strings.TrimRight(b.String(), "\n")
}

func formatPlanHuman(r *PlanResponse) string {
	var b strings.Builder
	writeSummary(&b, r.TotalRecords, []summaryLine{
		{"Existing identifiers kept", r.Kept},
		{"Identifiers to generate", len(r.Generated)},
		{"Excluded (identifier too long)", len(r.Excluded)},
		{"Skipped (no usable name)", r.Unnameable},
	})
	if len(r.Generated) > 0 {
		b.WriteString("\nGenerated identifiers:\n")
		for _, g := range r.Generated {
			fmt.Fprintf(&b, "  %-16s  %-12s  %s\n", g.PointID, g.SignalID, g.PointTag)
		}
	}
	if len(r.Excluded) > 0 {
		b.WriteString("\nExcluded signals:\n")
		for _, id := range r.Excluded {
			fmt.Fprintf(&b, "  %s\n", id)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatImportHuman(r *ImportResponse) string {
	return fmt.Sprintf("Imported %d of %d rows from %s (%d without signal id); database now holds %d measurements",
		r.Stats.Imported, r.Stats.Rows, r.Source, r.Stats.Skipped, r.Total)
}

func formatRunsHuman(r *RunsResponse) string {
	if len(r.Runs) == 0 {
		return "No export runs recorded"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-20s  %8s  %6s  %9s  %s\n", "RUN", "STARTED", "RECORDS", "ROWS", "GENERATED", "OUTPUT")
	for _, run := range r.Runs {
		fmt.Fprintf(&b, "%-36s  %-20s  %8d  %6d  %9d  %s\n",
			run.RunID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Summary.TotalRecords,
			run.Summary.RowsEmitted,
			run.Summary.Generated,
			run.Output,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

type summaryLine struct {
	label string
	value int
}

func writeSummary(b *strings.Builder, total int, lines []summaryLine) {
	fmt.Fprintf(b, "Records: %d\n", total)
	for _, l := range lines {
		fmt.Fprintf(b, "  %-32s %d\n", l.label+":", l.value)
	}
}
