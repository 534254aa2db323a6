// Package naming synthesizes short, stable measurement point identifiers from
// loosely structured device metadata.
//
// Everything in this package is pure: functions take their inputs by value and
// never consult process state, so callers control ordering and scope.
package naming

import (
	"sort"
	"strings"
)

// MaxLength is the hard ceiling for a measurement point identifier.
const MaxLength = 16

// SignalType is the signal-type code carried by a measurement.
type SignalType string

const (
	SignalCurrentMagnitude SignalType = "IPHM"
	SignalCurrentAngle     SignalType = "IPHA"
	SignalVoltageMagnitude SignalType = "VPHM"
	SignalVoltageAngle     SignalType = "VPHA"
	SignalFrequency        SignalType = "FREQ"
	SignalFrequencyDelta   SignalType = "DFDT"
	SignalCalculated       SignalType = "CALC"
	SignalAnalog           SignalType = "ALOG"
	SignalDigital          SignalType = "DIGI"
	SignalStatus           SignalType = "STAT"
	SignalFlag             SignalType = "FLAG"
)

// MeasurementRecord is one measurement as read from the metadata source.
// Records are values; updating one produces a new record.
type MeasurementRecord struct {
	SignalID    string `json:"signalId"`
	PointTag    string `json:"pointTag"`
	PointID     string `json:"pointId,omitempty"` // existing identifier, empty when none was assigned
	Device      string `json:"device,omitempty"`
	Description string `json:"description,omitempty"`
	SignalType  string `json:"signalType,omitempty"`
	Phase       string `json:"phase,omitempty"`
	PhasorType  string `json:"phasorType,omitempty"`
	PhasorLabel string `json:"phasorLabel,omitempty"`
}

// WithPointID returns a copy of the record carrying the given identifier.
func (r MeasurementRecord) WithPointID(id string) MeasurementRecord {
	r.PointID = id
	return r
}

// Type returns the normalized signal-type code.
func (r MeasurementRecord) Type() SignalType {
	return SignalType(strings.ToUpper(strings.TrimSpace(r.SignalType)))
}

// IsPhasor reports whether the record is a voltage or current magnitude/angle.
func (r MeasurementRecord) IsPhasor() bool {
	switch r.Type() {
	case SignalCurrentMagnitude, SignalCurrentAngle, SignalVoltageMagnitude, SignalVoltageAngle:
		return true
	}
	return false
}

// IsFrequency reports whether the record belongs to the frequency family.
func (r MeasurementRecord) IsFrequency() bool {
	switch r.Type() {
	case SignalFrequency, SignalFrequencyDelta:
		return true
	}
	return false
}

// IsCalculated reports whether the record is a calculated value.
func (r MeasurementRecord) IsCalculated() bool {
	return r.Type() == SignalCalculated
}

// RecordLess is the total order that fixes "first encountered" semantics for
// a run: device, then point tag, then signal id.
func RecordLess(a, b MeasurementRecord) bool {
	if a.Device != b.Device {
		return a.Device < b.Device
	}
	if a.PointTag != b.PointTag {
		return a.PointTag < b.PointTag
	}
	return a.SignalID < b.SignalID
}

// SortRecords returns a sorted copy of records ordered by RecordLess.
func SortRecords(records []MeasurementRecord) []MeasurementRecord {
	sorted := make([]MeasurementRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return RecordLess(sorted[i], sorted[j])
	})
	return sorted
}
