package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"mpx/internal/naming"
)

// csvColumns maps accepted header names to record fields.
var csvColumns = map[string]func(*naming.MeasurementRecord) *string{
	"signal_id":    func(r *naming.MeasurementRecord) *string { return &r.SignalID },
	"point_tag":    func(r *naming.MeasurementRecord) *string { return &r.PointTag },
	"point_id":     func(r *naming.MeasurementRecord) *string { return &r.PointID },
	"device":       func(r *naming.MeasurementRecord) *string { return &r.Device },
	"description":  func(r *naming.MeasurementRecord) *string { return &r.Description },
	"signal_type":  func(r *naming.MeasurementRecord) *string { return &r.SignalType },
	"phase":        func(r *naming.MeasurementRecord) *string { return &r.Phase },
	"phasor_type":  func(r *naming.MeasurementRecord) *string { return &r.PhasorType },
	"phasor_label": func(r *naming.MeasurementRecord) *string { return &r.PhasorLabel },
}

// ImportStats reports what ImportCSV did.
type ImportStats struct {
	Rows     int `json:"rows" yaml:"rows"`
	Imported int `json:"imported" yaml:"imported"`
	Skipped  int `json:"skipped" yaml:"skipped"` // rows without a signal id
}

// ReadCSV parses measurement records from r. The first row is a header;
// columns are matched case-insensitively and unknown columns are ignored.
// A signal_id column is required.
func ReadCSV(r io.Reader) ([]naming.MeasurementRecord, ImportStats, error) {
	var stats ImportStats

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, errors.New("csv input is empty")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read csv header: %w", err)
	}

	fields := make([]func(*naming.MeasurementRecord) *string, len(header))
	hasSignalID := false
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		fields[i] = csvColumns[key]
		if key == "signal_id" {
			hasSignalID = true
		}
	}
	if !hasSignalID {
		return nil, stats, errors.New("csv header has no signal_id column")
	}

	var records []naming.MeasurementRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read csv: %w", err)
		}
		stats.Rows++

		var rec naming.MeasurementRecord
		for i, value := range row {
			if field := fields[i]; field != nil {
				*field(&rec) = strings.TrimSpace(value)
			}
		}
		if rec.SignalID == "" {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
	}
	stats.Imported = len(records)
	return records, stats, nil
}

// ImportCSV reads records from r and upserts them into the repository.
func (r *MeasurementRepository) ImportCSV(ctx context.Context, in io.Reader) (ImportStats, error) {
	records, stats, err := ReadCSV(in)
	if err != nil {
		return stats, err
	}
	if err := r.Upsert(ctx, records); err != nil {
		return stats, err
	}
	r.db.logger.Info("Imported measurements",
		"rows", stats.Rows,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
	)
	return stats, nil
}
