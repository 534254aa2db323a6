package export

import (
	"strings"
	"testing"

	"mpx/internal/naming"
)

func TestNewPlan(t *testing.T) {
	plan := NewPlan(sampleRecords(), testPrefixes)

	if !plan.IsExcluded("s12") {
		t.Error("s12 has a 20 character identifier and should be excluded")
	}
	if len(plan.Excluded) != 1 {
		t.Errorf("len(Excluded) = %d, want 1", len(plan.Excluded))
	}
	if plan.Unnameable != 1 {
		t.Errorf("Unnameable = %d, want 1", plan.Unnameable)
	}
	if got := plan.Generated["s1"]; got != "GRNDGULF1" {
		t.Errorf("Generated[s1] = %q, want GRNDGULF1", got)
	}
	if got := plan.Generated["s6"]; got != "PRTHUDSON" {
		t.Errorf("Generated[s6] = %q, want PRTHUDSON", got)
	}

	for _, id := range []string{"s10", "s11", "s12", "s13", "s14"} {
		if _, ok := plan.Generated[id]; ok {
			t.Errorf("%s should not get a generated identifier", id)
		}
	}
	if len(plan.Persist) != len(plan.Generated) {
		t.Errorf("len(Persist) = %d, want %d", len(plan.Persist), len(plan.Generated))
	}
	for _, a := range plan.Persist {
		if plan.IsExcluded(a.SignalID) {
			t.Errorf("%s is both excluded and pending persist", a.SignalID)
		}
	}

	if base, ok := plan.Base(naming.MeasurementRecord{SignalID: "s14"}); !ok || base != "KEEPME" {
		t.Errorf("Base(s14) = %q, %v; want KEEPME", base, ok)
	}
	if _, ok := plan.Base(naming.MeasurementRecord{SignalID: "s12"}); ok {
		t.Error("excluded records have no base")
	}
}

func TestNewPlanOrdersRecords(t *testing.T) {
	plan := NewPlan(sampleRecords(), testPrefixes)
	for i := 1; i < len(plan.Ordered); i++ {
		if naming.RecordLess(plan.Ordered[i], plan.Ordered[i-1]) {
			t.Fatalf("records %d and %d are out of order", i-1, i)
		}
	}
	// Persist follows encounter order.
	if plan.Persist[0].SignalID != "s4" {
		t.Errorf("first pending assignment = %s, want s4", plan.Persist[0].SignalID)
	}
}

func TestNewPlanPermanence(t *testing.T) {
	first := NewPlan(sampleRecords(), testPrefixes)

	persisted := make([]naming.MeasurementRecord, 0)
	for _, rec := range sampleRecords() {
		if id, ok := first.Generated[rec.SignalID]; ok {
			rec = rec.WithPointID(id)
		}
		persisted = append(persisted, rec)
	}

	second := NewPlan(persisted, testPrefixes)
	if len(second.Persist) != 0 {
		t.Errorf("second run wants to persist %d identifiers, want 0", len(second.Persist))
	}
	for sig, id := range first.Generated {
		rec := naming.MeasurementRecord{SignalID: sig}
		if got, _ := second.Base(rec); got != id {
			t.Errorf("Base(%s) changed from %q to %q", sig, id, got)
		}
	}
}

func TestNewPlanIgnoresSettingsForLongIdentifiers(t *testing.T) {
	rec := naming.MeasurementRecord{SignalID: "x", PointTag: "ACME_GRAND_GULF_1", PointID: "THIS_IS_TWENTY_CHARS"}
	for _, prefixes := range [][]string{nil, {"ACME"}, {"ACME", "THIS"}} {
		plan := NewPlan([]naming.MeasurementRecord{rec}, prefixes)
		if !plan.IsExcluded("x") || len(plan.Persist) != 0 {
			t.Errorf("prefixes %v: long identifier must stay excluded and untouched", prefixes)
		}
	}
}

func TestNewPlanAvoidsStoredIdentifiers(t *testing.T) {
	base, ok := naming.BuildBase("ACME_GRAND_1", testPrefixes)
	if !ok {
		t.Fatal("ACME_GRAND_1 should produce a base identifier")
	}
	records := []naming.MeasurementRecord{
		{SignalID: "a", Device: "DEV1", PointTag: "ACME_GRAND_1", SignalType: "ALOG"},
		{SignalID: "b", Device: "DEV2", PointTag: "ACME_OTHER_9", PointID: base, SignalType: "ALOG"},
	}

	plan := NewPlan(records, testPrefixes)
	got := plan.Generated["a"]
	if got == "" {
		t.Fatal("a should get a generated identifier")
	}
	if strings.EqualFold(got, base) {
		t.Errorf("Generated[a] = %q, which is stored on b", got)
	}
	if !pointIDPattern.MatchString(got) {
		t.Errorf("Generated[a] = %q is not a valid identifier", got)
	}
	if len(plan.Persist) != 1 || plan.Persist[0].PointID != got {
		t.Errorf("Persist = %v, want [{a %s}]", plan.Persist, got)
	}
	if !plan.Stored.Contains(base) {
		t.Errorf("Stored should contain %q", base)
	}
	if !plan.StoredBase(records[1]) || plan.StoredBase(records[0]) {
		t.Error("only b has a stored base")
	}
}
