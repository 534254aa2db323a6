package export

import (
	"strings"

	"mpx/internal/naming"
)

// Plan is created once per run from the loaded records.
//
// A signal id is either excluded (its stored identifier is over length and is
// left alone) or has a base identifier, taken from the store or generated.
// Only generated identifiers are listed in Persist. Generated identifiers
// never equal a stored identifier of another signal.
type Plan struct {
	Ordered    []naming.MeasurementRecord
	Excluded   map[string]struct{}
	Generated  map[string]string
	Persist    []Assignment
	Stored     naming.IdentifierSet
	Unnameable int

	bases map[string]string
}

// NewPlan orders records with naming.RecordLess and decides, per record,
// whether to keep, exclude or generate its identifier.
func NewPlan(records []naming.MeasurementRecord, prefixes []string) *Plan {
	p := &Plan{
		Ordered:   naming.SortRecords(records),
		Excluded:  make(map[string]struct{}),
		Generated: make(map[string]string),
		Stored:    naming.NewIdentifierSet(),
		bases:     make(map[string]string, len(records)),
	}

	for _, rec := range p.Ordered {
		if existing := strings.TrimSpace(rec.PointID); existing != "" && len(existing) <= naming.MaxLength {
			p.Stored.Add(existing)
		}
	}

	for _, rec := range p.Ordered {
		existing := strings.TrimSpace(rec.PointID)
		switch {
		case len(existing) > naming.MaxLength:
			p.Excluded[rec.SignalID] = struct{}{}
		case existing != "":
			p.bases[rec.SignalID] = existing
		default:
			base, ok := naming.BuildBase(rec.PointTag, prefixes)
			if !ok {
				p.Unnameable++
				continue
			}
			base = strings.ToUpper(naming.Resolve(base, rec.SignalID, p.Stored))
			p.bases[rec.SignalID] = base
			p.Generated[rec.SignalID] = base
			p.Persist = append(p.Persist, Assignment{SignalID: rec.SignalID, PointID: base})
		}
	}
	return p
}

// Base returns the base identifier of rec, or false when rec is excluded or
// has no derivable name.
func (p *Plan) Base(rec naming.MeasurementRecord) (string, bool) {
	base, ok := p.bases[rec.SignalID]
	return base, ok
}

// StoredBase reports whether rec's base identifier came from the store.
func (p *Plan) StoredBase(rec naming.MeasurementRecord) bool {
	if _, generated := p.Generated[rec.SignalID]; generated {
		return false
	}
	_, ok := p.bases[rec.SignalID]
	return ok
}

// IsExcluded reports whether the signal's stored identifier is over length.
func (p *Plan) IsExcluded(signalID string) bool {
	_, ok := p.Excluded[signalID]
	return ok
}
