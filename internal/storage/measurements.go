package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mpx/internal/export"
	"mpx/internal/naming"
)

var (
	_ export.RecordSource = (*MeasurementRepository)(nil)
	_ export.PersistSink  = (*MeasurementRepository)(nil)
)

// MeasurementRepository reads measurement records and writes generated
// identifiers back.
type MeasurementRepository struct {
	db *DB
}

// NewMeasurementRepository creates a repository on db.
func NewMeasurementRepository(db *DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// LoadMeasurements returns every stored record. A NULL identifier loads as "".
func (r *MeasurementRepository) LoadMeasurements(ctx context.Context) ([]naming.MeasurementRecord, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT signal_id, point_tag, COALESCE(point_id, ''), device, description,
			signal_type, phase, phasor_type, phasor_label
		FROM measurements
		ORDER BY signal_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var records []naming.MeasurementRecord
	for rows.Next() {
		var rec naming.MeasurementRecord
		if err := rows.Scan(
			&rec.SignalID,
			&rec.PointTag,
			&rec.PointID,
			&rec.Device,
			&rec.Description,
			&rec.SignalType,
			&rec.Phase,
			&rec.PhasorType,
			&rec.PhasorLabel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read measurements: %w", err)
	}
	return records, nil
}

// AssignPointID stores pointID for signalID unless an identifier is already
// present. It reports whether the row was written.
func (r *MeasurementRepository) AssignPointID(ctx context.Context, signalID, pointID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx, `
		UPDATE measurements SET point_id = ?, updated_at = ?
		WHERE signal_id = ? AND (point_id IS NULL OR point_id = '')
	`, pointID, now(), signalID)
	if err != nil {
		return false, fmt.Errorf("failed to assign point id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to assign point id: %w", err)
	}
	return n == 1, nil
}

// Upsert inserts or updates records by signal id in one transaction. The
// descriptive fields are replaced; a stored identifier is never cleared or
// changed.
func (r *MeasurementRepository) Upsert(ctx context.Context, records []naming.MeasurementRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO measurements (
				signal_id, point_tag, point_id, device, description,
				signal_type, phase, phasor_type, phasor_label, updated_at
			) VALUES (?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(signal_id) DO UPDATE SET
				point_tag = excluded.point_tag,
				point_id = CASE
					WHEN measurements.point_id IS NULL OR measurements.point_id = ''
					THEN excluded.point_id
					ELSE measurements.point_id
				END,
				device = excluded.device,
				description = excluded.description,
				signal_type = excluded.signal_type,
				phase = excluded.phase,
				phasor_type = excluded.phasor_type,
				phasor_label = excluded.phasor_label,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		ts := now()
		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx,
				rec.SignalID,
				rec.PointTag,
				strings.TrimSpace(rec.PointID),
				rec.Device,
				rec.Description,
				rec.SignalType,
				rec.Phase,
				rec.PhasorType,
				rec.PhasorLabel,
				ts,
			); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", rec.SignalID, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored records.
func (r *MeasurementRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n)
	return n, err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
