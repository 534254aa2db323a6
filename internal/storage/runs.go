package storage

import (
	"context"
	"fmt"
	"time"

	"mpx/internal/export"
)

// runTimeLayout has a fixed width so stored times sort lexically.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one row of the export run ledger.
type Run struct {
	RunID      string         `json:"runId" yaml:"runId"`
	StartedAt  time.Time      `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt" yaml:"finishedAt"`
	Summary    export.Summary `json:"summary" yaml:"summary"`
	Output     string         `json:"output,omitempty" yaml:"output,omitempty"`
	Checksum   string         `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// RunRepository records finished export runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a repository on db.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create appends run to the ledger.
func (r *RunRepository) Create(ctx context.Context, run *Run) error {
	s := run.Summary
	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO export_runs (
			run_id, started_at, finished_at,
			total_records, rows_emitted, excluded_too_long, generated,
			persisted, persist_skipped, unnameable, duplicates_dropped,
			output, checksum
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.StartedAt.UTC().Format(runTimeLayout),
		run.FinishedAt.UTC().Format(runTimeLayout),
		s.TotalRecords, s.RowsEmitted, s.ExcludedTooLong, s.Generated,
		s.Persisted, s.PersistSkipped, s.Unnameable, s.DuplicatesDropped,
		run.Output, run.Checksum,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT run_id, started_at, finished_at,
			total_records, rows_emitted, excluded_too_long, generated,
			persisted, persist_skipped, unnameable, duplicates_dropped,
			output, checksum
		FROM export_runs
		ORDER BY started_at DESC, run_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		s := &run.Summary
		if err := rows.Scan(
			&run.RunID, &started, &finished,
			&s.TotalRecords, &s.RowsEmitted, &s.ExcludedTooLong, &s.Generated,
			&s.Persisted, &s.PersistSkipped, &s.Unnameable, &s.DuplicatesDropped,
			&run.Output, &run.Checksum,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(runTimeLayout, started); err != nil {
			return nil, fmt.Errorf("run %s: bad start time: %w", run.RunID, err)
		}
		if run.FinishedAt, err = time.Parse(runTimeLayout, finished); err != nil {
			return nil, fmt.Errorf("run %s: bad finish time: %w", run.RunID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
