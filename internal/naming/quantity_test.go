package naming

import "testing"

func TestQuantity(t *testing.T) {
	tests := []struct {
		name     string
		rec      MeasurementRecord
		mapPower bool
		want     string
	}{
		{"voltage magnitude", MeasurementRecord{SignalType: "VPHM", Phase: "A"}, false, "VA_MAG"},
		{"current angle", MeasurementRecord{SignalType: "iphA", Phase: "b"}, false, "IB_ANG"},
		{"positive sequence", MeasurementRecord{SignalType: "VPHM", Phase: "+"}, false, "V1_MAG"},
		{"negative sequence", MeasurementRecord{SignalType: "IPHM", Phase: "-"}, false, "I2_MAG"},
		{"zero sequence", MeasurementRecord{SignalType: "VPHA", Phase: "0"}, false, "V0_ANG"},
		{"no phase", MeasurementRecord{SignalType: "VPHM"}, false, "V_MAG"},
		{"frequency", MeasurementRecord{SignalType: "FREQ"}, false, "FREQ"},
		{"dfdt", MeasurementRecord{SignalType: "DFDT"}, false, "DFDT"},
		{"calc without mapping", MeasurementRecord{SignalType: "CALC", Description: "DEV WEST MW"}, false, "CALC"},
		{"calc mapped to MW", MeasurementRecord{SignalType: "CALC", Description: "DEV WEST MW"}, true, "MW"},
		{"calc mapped to MVAR", MeasurementRecord{SignalType: "CALC", Description: "DEV WEST Mvar"}, true, "MVAR"},
		{"calc with no power word", MeasurementRecord{SignalType: "CALC", Description: "DEV WEST"}, true, "CALC"},
		{"analog", MeasurementRecord{SignalType: "ALOG"}, true, "ANALOG"},
		{"digital", MeasurementRecord{SignalType: "DIGI"}, false, "DIGITAL"},
		{"status", MeasurementRecord{SignalType: "STAT"}, false, "STATUS"},
		{"flag", MeasurementRecord{SignalType: "FLAG"}, false, "FLAG"},
		{"unknown code passes through", MeasurementRecord{SignalType: "qual"}, false, "QUAL"},
		{"missing type", MeasurementRecord{}, false, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantity(tt.rec, tt.mapPower); got != tt.want {
				t.Errorf("Quantity() = %q, want %q", got, tt.want)
			}
		})
	}
}
