package naming

import "testing"

func TestStripPhaseSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BOGALUSA_LN_A", "BOGALUSA_LN_A"},
		{"BOGALUSA_LN_B", "BOGALUSA_LN_B"},
		{"BOGALUSA_LN_A_IA", "BOGALUSA_LN_A"},
		{"west__va", "WEST"},
		{"PORT_V1", "PORT"},
		{"VA", "VA"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripPhaseSuffix(tt.in); got != tt.want {
			t.Errorf("StripPhaseSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSinglePMUDevice(t *testing.T) {
	tests := []struct {
		device string
		want   bool
	}{
		{"GRANDGULF_PMU_LNE1", true},
		{"grandgulf-pmu-abc2", true},
		{"GRANDGULF_PMU_LN1", false},
		{"GRANDGULF_PMU", false},
		{"ACMEPMU1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSinglePMUDevice(tt.device); got != tt.want {
			t.Errorf("IsSinglePMUDevice(%q) = %v, want %v", tt.device, got, tt.want)
		}
	}
}

func TestExtractLineName(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"power calculation marker", "Power calculation for WEST_LN_1 MW", "WEST_LN_1"},
		{"calculated value marker", "ACMEPMU1 BOGALUSA LN A Calculated Value", "BOGALUSA_LN_A"},
		{"token after device", "ACMEPMU1 EAST_TIE MW", "EAST_TIE"},
		{"phase indicator then name", "ACMEPMU1 A EAST_TIE", "EAST_TIE"},
		{"signal indicator then line", "ACMEPMU1 VA BOGALUSA_LN_A MW", "BOGALUSA_LN_A"},
		{"phase suffix stripped", "ACMEPMU1 EAST_TIE_IA", "EAST_TIE"},
		{"only indicators", "ACMEPMU1 VOLTAGE MAGNITUDE", ""},
		{"device missing", "OTHERDEV WEST", ""},
		{"numbers only", "ACMEPMU1 500", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLineName("ACMEPMU1", tt.description); got != tt.want {
				t.Errorf("ExtractLineName(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name string
		rec  MeasurementRecord
		kind KeyKind
		want string
	}{
		{
			name: "single-line PMU wins over phasor label",
			rec:  MeasurementRecord{SignalID: "s1", Device: "GRANDGULF_PMU_LNE1", SignalType: "VPHM", PhasorLabel: "WEST_VA"},
			kind: KeyPMU,
			want: "GRANDGULF_PMU_LNE1|PMU",
		},
		{
			name: "phasor label stripped",
			rec:  MeasurementRecord{SignalID: "s2", Device: "acmepmu1", SignalType: "VPHM", PhasorLabel: "Bogalusa_LN_A_VA"},
			kind: KeyPhasor,
			want: "ACMEPMU1|PHASOR|BOGALUSA_LN_A",
		},
		{
			name: "calculated value joins phasor namespace",
			rec:  MeasurementRecord{SignalID: "s3", Device: "ACMEPMU1", SignalType: "CALC", Description: "ACMEPMU1 BOGALUSA_LN_A Calculated Value: MW"},
			kind: KeyLine,
			want: "ACMEPMU1|PHASOR|BOGALUSA_LN_A",
		},
		{
			name: "frequency",
			rec:  MeasurementRecord{SignalID: "s4", Device: "ACMEPMU1", SignalType: "FREQ", Description: "ACMEPMU1 Frequency"},
			kind: KeyFrequency,
			want: "ACMEPMU1|FREQ",
		},
		{
			name: "fallback to signal",
			rec:  MeasurementRecord{SignalID: "sig-9", Device: "ACMEPMU1", SignalType: "ALOG"},
			kind: KeySignal,
			want: "ACMEPMU1|sig-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := DeriveKey(tt.rec)
			if key.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", key.Kind, tt.kind)
			}
			if key.String() != tt.want {
				t.Errorf("String() = %q, want %q", key.String(), tt.want)
			}
		})
	}
}
