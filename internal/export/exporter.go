package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	mpxerrors "mpx/internal/errors"
	"mpx/internal/slogutil"
)

// Exporter drives one run: load, plan, optionally persist, assemble, write.
// A failing source, sink or row writer aborts the run; nothing is resumed.
type Exporter struct {
	source RecordSource
	sink   PersistSink
	logger *slog.Logger
}

// NewExporter creates an exporter. sink may be nil when persistence is never
// requested.
func NewExporter(source RecordSource, sink PersistSink, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Exporter{
		source: source,
		sink:   sink,
		logger: logger,
	}
}

// Plan loads the records and builds the identifier plan without side effects.
func (e *Exporter) Plan(ctx context.Context, opts Options) (*Plan, int, error) {
	records, err := e.source.LoadMeasurements(ctx)
	if err != nil {
		return nil, 0, mpxerrors.New(mpxerrors.QueryFailed, "failed to load measurements", err)
	}

	plan := NewPlan(records, opts.Prefixes())
	e.logger.Debug("Planned identifiers",
		"records", len(records),
		"excluded", len(plan.Excluded),
		"generated", len(plan.Generated),
		"unnameable", plan.Unnameable,
	)
	return plan, len(records), nil
}

// Run executes a full export. rows may be nil to skip writing.
func (e *Exporter) Run(ctx context.Context, opts Options, rows RowSink) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	logger := e.logger.With("run", result.RunID)

	plan, total, err := e.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Summary.TotalRecords = total
	result.Summary.ExcludedTooLong = len(plan.Excluded)
	result.Summary.Generated = len(plan.Generated)
	result.Summary.Unnameable = plan.Unnameable

	if len(plan.Excluded) > 0 {
		logger.Warn("Identifiers over length excluded from output",
			"count", len(plan.Excluded),
		)
	}

	if opts.Persist {
		written, skipped, err := e.persist(ctx, plan)
		if err != nil {
			return nil, err
		}
		result.Summary.Persisted = written
		result.Summary.PersistSkipped = skipped
		logger.Info("Persisted generated identifiers",
			"written", written,
			"skipped", skipped,
		)
	}

	asm := Assemble(plan, AssembleOptions{MapPowerQuantities: opts.MapPowerQuantities})
	result.Rows = asm.Rows
	result.Summary.RowsEmitted = len(asm.Rows)
	result.Summary.DuplicatesDropped = asm.DuplicatesDropped
	result.Summary.Unnameable += asm.Unnamed

	if rows != nil {
		if err := rows.WriteRows(asm.Rows); err != nil {
			return nil, mpxerrors.New(mpxerrors.OutputFailed, "failed to write rows", err)
		}
	}

	result.FinishedAt = time.Now().UTC()
	logger.Info("Export completed",
		"records", result.Summary.TotalRecords,
		"rows", result.Summary.RowsEmitted,
		"generated", result.Summary.Generated,
		"duration", result.FinishedAt.Sub(result.StartedAt),
	)
	return result, nil
}

// persist writes the plan's pending assignments. The sink refuses to
// overwrite a non-empty identifier, which counts as skipped.
func (e *Exporter) persist(ctx context.Context, plan *Plan) (written, skipped int, err error) {
	if e.sink == nil {
		return 0, 0, mpxerrors.New(mpxerrors.ConfigInvalid, "persistence requested without a sink", nil)
	}
	for _, a := range plan.Persist {
		ok, err := e.sink.AssignPointID(ctx, a.SignalID, a.PointID)
		if err != nil {
			return written, skipped, mpxerrors.New(mpxerrors.PersistFailed, "failed to assign identifier", err).
				WithDetails(a)
		}
		if ok {
			written++
		} else {
			skipped++
		}
	}
	return written, skipped, nil
}
