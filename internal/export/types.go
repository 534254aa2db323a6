// Package export turns a batch of measurement records into measurement point
// rows while keeping every identifier that was ever persisted unchanged.
package export

import (
	"context"
	"time"

	"mpx/internal/naming"
)

// FinalRow is one emitted output row.
type FinalRow struct {
	Device      string `json:"device"`
	Description string `json:"description"`
	PointID     string `json:"pointId"`
	Quantity    string `json:"quantity"`
}

// Assignment is a newly generated identifier that should be written back.
type Assignment struct {
	SignalID string `json:"signalId"`
	PointID  string `json:"pointId"`
}

// RecordSource supplies the records of one run.
type RecordSource interface {
	LoadMeasurements(ctx context.Context) ([]naming.MeasurementRecord, error)
}

// PersistSink stores generated identifiers. AssignPointID must only write
// when the stored identifier is still empty and reports whether it wrote.
type PersistSink interface {
	AssignPointID(ctx context.Context, signalID, pointID string) (bool, error)
}

// RowSink receives the assembled rows.
type RowSink interface {
	WriteRows(rows []FinalRow) error
}

// Options configures a run.
type Options struct {
	Acronym            string   // organization acronym, stripped first
	ExcludePrefixes    []string // additional prefixes, stripped in order
	MapPowerQuantities bool
	Persist            bool
}

// Prefixes returns the ordered prefix list handed to the base builder.
func (o Options) Prefixes() []string {
	prefixes := make([]string, 0, len(o.ExcludePrefixes)+1)
	if o.Acronym != "" {
		prefixes = append(prefixes, o.Acronym)
	}
	return append(prefixes, o.ExcludePrefixes...)
}

// Summary holds the operator-facing counts of a run.
type Summary struct {
	TotalRecords      int `json:"totalRecords" yaml:"totalRecords"`
	RowsEmitted       int `json:"rowsEmitted" yaml:"rowsEmitted"`
	ExcludedTooLong   int `json:"excludedTooLong" yaml:"excludedTooLong"`
	Generated         int `json:"generated" yaml:"generated"`
	Persisted         int `json:"persisted" yaml:"persisted"`
	PersistSkipped    int `json:"persistSkipped" yaml:"persistSkipped"`
	Unnameable        int `json:"unnameable" yaml:"unnameable"`
	DuplicatesDropped int `json:"duplicatesDropped" yaml:"duplicatesDropped"`
}

// Result is the outcome of Exporter.Run.
type Result struct {
	RunID      string     `json:"runId" yaml:"runId"`
	StartedAt  time.Time  `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt" yaml:"finishedAt"`
	Summary    Summary    `json:"summary" yaml:"summary"`
	Rows       []FinalRow `json:"-" yaml:"-"`
}
