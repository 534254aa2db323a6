package export

import "mpx/internal/naming"

var testPrefixes = []string{"ACME"}

// sampleRecords covers a multi-line device, a single-phasor device, a
// single-line PMU and the exclusion and skip paths.
func sampleRecords() []naming.MeasurementRecord {
	return []naming.MeasurementRecord{
		// ACMEPMU1: two lines, BOGALUSA_LN_A and BOGALUSA_LN_B
		{SignalID: "s1", Device: "ACMEPMU1", PointTag: "ACME_GRAND_GULF_1-VA", SignalType: "VPHM", Phase: "A", PhasorLabel: "BOGALUSA_LN_A_VA"},
		{SignalID: "s2", Device: "ACMEPMU1", PointTag: "ACME_GRAND_GULF_1-VA", SignalType: "VPHA", Phase: "A", PhasorLabel: "BOGALUSA_LN_A_VA"},
		{SignalID: "s3", Device: "ACMEPMU1", PointTag: "ACME_GRAND_GULF_1-VB", SignalType: "VPHM", Phase: "B", PhasorLabel: "BOGALUSA_LN_B_VB"},
		{SignalID: "s4", Device: "ACMEPMU1", PointTag: "ACME_GRAND_GULF_1-F", SignalType: "FREQ", Description: "ACMEPMU1 Frequency"},
		{SignalID: "s5", Device: "ACMEPMU1", PointTag: "ACME_GRAND_GULF_1-MW", SignalType: "CALC", Description: "ACMEPMU1 BOGALUSA_LN_A Calculated Value: MW"},

		// ACMEPMU2: one phasor group
		{SignalID: "s6", Device: "ACMEPMU2", PointTag: "ACME_PORT_HUDSON-VA", SignalType: "VPHM", Phase: "A", PhasorLabel: "WEST_VA"},
		{SignalID: "s7", Device: "ACMEPMU2", PointTag: "ACME_PORT_HUDSON-F", SignalType: "FREQ"},

		// single-line PMU
		{SignalID: "s8", Device: "GRANDGULF_PMU_LNE1", PointTag: "ACME_GRAND_GULF_2-VA", SignalType: "VPHM", Phase: "A", PhasorLabel: "X_VA"},
		{SignalID: "s9", Device: "GRANDGULF_PMU_LNE1", PointTag: "ACME_GRAND_GULF_2-IA", SignalType: "IPHM", Phase: "A", PhasorLabel: "Y_IA"},

		// two unrelated analogs sharing a stored identifier
		{SignalID: "s10", Device: "DEV9", PointTag: "ACME_ANY_1", PointID: "SUB1", SignalType: "ALOG"},
		{SignalID: "s11", Device: "DEV9", PointTag: "ACME_ANY_2", PointID: "SUB1", SignalType: "ALOG"},

		// over-length stored identifier, unnameable tag, kept identifier
		{SignalID: "s12", Device: "DEV9", PointTag: "ACME_LONG_1", PointID: "ABCDEFGHIJKLMNOPQRST", SignalType: "ALOG"},
		{SignalID: "s13", Device: "DEV9", PointTag: "ACME_X_Y", SignalType: "ALOG"},
		{SignalID: "s14", Device: "DEV9", PointTag: "ACME_KEEP_1", PointID: "KEEPME", SignalType: "ALOG"},
	}
}
