package export

import (
	"strings"

	"mpx/internal/naming"
)

// AssembleOptions tunes row assembly.
type AssembleOptions struct {
	MapPowerQuantities bool
}

// Assembly is the output of Assemble.
type Assembly struct {
	Rows              []FinalRow
	Assigned          map[string]string // signal id -> final identifier
	DuplicatesDropped int
	Unnamed           int // records whose base sanitized to nothing
}

// arena holds the indices of one assembly. Nothing in it outlives the call.
type arena struct {
	plan *Plan
	opts AssembleOptions

	used    naming.IdentifierSet
	taken   takenSet            // used plus identifiers stored on any record
	groups  map[string]string   // line-group key -> identifier
	phasors map[string][]string // device -> distinct phasor-group identifiers, in allocation order

	emitted map[string]struct{}
	asm     Assembly
}

// Assemble assigns final identifiers in two passes over plan.Ordered:
// phasors first, then everything else, so frequency and calculated values
// can reuse identifiers their device's phasors already received.
//
// A stored identifier is handed only to a group containing a record that
// stores it; every other group resolves around it.
func Assemble(plan *Plan, opts AssembleOptions) *Assembly {
	a := &arena{
		plan:    plan,
		opts:    opts,
		used:    naming.NewIdentifierSet(),
		groups:  make(map[string]string),
		phasors: make(map[string][]string),
		emitted: make(map[string]struct{}),
	}
	stored := plan.Stored
	if stored == nil {
		stored = naming.NewIdentifierSet()
	}
	a.taken = takenSet{a.used, stored}
	a.asm.Assigned = make(map[string]string, len(plan.Ordered))

	for _, rec := range plan.Ordered {
		if rec.IsPhasor() {
			a.placePhasor(rec)
		}
	}
	for _, rec := range plan.Ordered {
		if !rec.IsPhasor() {
			a.placeOther(rec)
		}
	}
	return &a.asm
}

func (a *arena) placePhasor(rec naming.MeasurementRecord) {
	base, ok := a.plan.Base(rec)
	if !ok {
		return
	}
	key := naming.DeriveKey(rec)
	id := a.groupIdentifier(rec, key, base)
	if id == "" {
		a.asm.Unnamed++
		return
	}

	a.notePhasor(key.Device, id)
	a.emit(rec, id)
}

func (a *arena) placeOther(rec naming.MeasurementRecord) {
	base, ok := a.plan.Base(rec)
	if !ok {
		return
	}
	key := naming.DeriveKey(rec)

	var id string
	switch key.Kind {
	case naming.KeyFrequency:
		// Reuse only when the device has exactly one phasor group; with
		// several there is no principled choice.
		if ids := a.phasors[key.Device]; len(ids) == 1 {
			id = ids[0]
		} else {
			id = a.groupIdentifier(rec, key, base)
		}
	default:
		// A line key shares the phasor namespace, so a calculated value
		// finds its line's phasor group in the cache.
		id = a.groupIdentifier(rec, key, base)
	}

	if id == "" {
		a.asm.Unnamed++
		return
	}
	a.emit(rec, id)
}

// groupIdentifier returns the cached identifier of key's group, allocating
// one from base on first use. rec may claim a stored identifier only if it
// is the one rec stores.
func (a *arena) groupIdentifier(rec naming.MeasurementRecord, key naming.LineGroupKey, base string) string {
	k := key.String()
	if id, ok := a.groups[k]; ok {
		return id
	}

	candidate := candidateFor(key, base)
	if candidate == "" {
		return ""
	}
	var id string
	if a.plan.StoredBase(rec) && strings.EqualFold(candidate, base) && !a.used.Contains(candidate) {
		id = candidate
	} else {
		id = naming.Resolve(candidate, k, a.taken)
	}
	a.used.Add(id)
	a.groups[k] = id
	return id
}

func candidateFor(key naming.LineGroupKey, base string) string {
	var c string
	switch key.Kind {
	case naming.KeyPMU:
		c = naming.PMUStationIdentifier(key.Device)
		if c == "" {
			c = base
		}
	case naming.KeyPhasor, naming.KeyLine:
		c = naming.AllocateLine(base, key.Line)
	default:
		c = base
	}
	return naming.Clamp(naming.Sanitize(c))
}

func (a *arena) notePhasor(device, id string) {
	for _, existing := range a.phasors[device] {
		if existing == id {
			return
		}
	}
	a.phasors[device] = append(a.phasors[device], id)
}

func (a *arena) emit(rec naming.MeasurementRecord, id string) {
	pointID := strings.ToUpper(id)
	a.asm.Assigned[rec.SignalID] = pointID
	quantity := naming.Quantity(rec, a.opts.MapPowerQuantities)

	dedup := pointID + "|" + strings.ToUpper(quantity)
	if _, seen := a.emitted[dedup]; seen {
		a.asm.DuplicatesDropped++
		return
	}
	a.emitted[dedup] = struct{}{}

	a.asm.Rows = append(a.asm.Rows, FinalRow{
		Device:      rec.Device,
		Description: rec.Description,
		PointID:     pointID,
		Quantity:    quantity,
	})
}

// takenSet is the union of the run's allocations and the store's identifiers.
type takenSet struct {
	used   naming.IdentifierSet
	stored naming.IdentifierSet
}

func (t takenSet) Contains(id string) bool {
	return t.used.Contains(id) || t.stored.Contains(id)
}
