package naming

import "strings"

// Quantity descriptors for non-phasor signals.
const (
	QuantityFrequency      = "FREQ"
	QuantityFrequencyDelta = "DFDT"
	QuantityCalculated     = "CALC"
	QuantityAnalog         = "ANALOG"
	QuantityDigital        = "DIGITAL"
	QuantityStatus         = "STATUS"
	QuantityFlag           = "FLAG"
	QuantityUnknown        = "UNKNOWN"
)

var powerQuantities = map[string]struct{}{
	"MW":   {},
	"MVAR": {},
	"MVA":  {},
	"PF":   {},
}

var phaseDesignators = map[string]string{
	"A": "A",
	"B": "B",
	"C": "C",
	"N": "N",
	"+": "1",
	"-": "2",
	"0": "0",
	"1": "1",
	"2": "2",
}

// Quantity maps a record to the descriptor emitted next to its identifier,
// for example VA_MAG, IB_ANG or FREQ. With mapPower set, calculated values
// whose description names a power quantity map to that quantity.
func Quantity(rec MeasurementRecord, mapPower bool) string {
	switch t := rec.Type(); t {
	case SignalVoltageMagnitude, SignalVoltageAngle, SignalCurrentMagnitude, SignalCurrentAngle:
		kind := "V"
		if t == SignalCurrentMagnitude || t == SignalCurrentAngle {
			kind = "I"
		}
		part := "MAG"
		if t == SignalVoltageAngle || t == SignalCurrentAngle {
			part = "ANG"
		}
		return kind + phaseDesignator(rec.Phase) + "_" + part
	case SignalFrequency:
		return QuantityFrequency
	case SignalFrequencyDelta:
		return QuantityFrequencyDelta
	case SignalCalculated:
		if mapPower {
			if q := powerQuantity(rec.Description); q != "" {
				return q
			}
		}
		return QuantityCalculated
	case SignalAnalog:
		return QuantityAnalog
	case SignalDigital:
		return QuantityDigital
	case SignalStatus:
		return QuantityStatus
	case SignalFlag:
		return QuantityFlag
	case "":
		return QuantityUnknown
	default:
		return string(t)
	}
}

func phaseDesignator(phase string) string {
	if d, ok := phaseDesignators[strings.ToUpper(strings.TrimSpace(phase))]; ok {
		return d
	}
	return ""
}

func powerQuantity(description string) string {
	for _, tok := range descriptionTokens(strings.ToUpper(description)) {
		if _, ok := powerQuantities[tok]; ok {
			return tok
		}
	}
	return ""
}
