package naming

import (
	"regexp"
	"strings"
)

// KeyKind is the scope a LineGroupKey groups by.
type KeyKind int

const (
	// KeySignal scopes a group to a single signal.
	KeySignal KeyKind = iota
	// KeyPMU groups every measurement of a single-line PMU.
	KeyPMU
	// KeyPhasor groups by stripped phasor label.
	KeyPhasor
	// KeyLine groups by a line name taken from the description. It shares
	// the phasor namespace so derived values land on their phasor's group.
	KeyLine
	// KeyFrequency groups frequency-family signals of a device.
	KeyFrequency
)

// LineGroupKey identifies the set of measurements that must share one
// identifier. Keys are compared through String.
type LineGroupKey struct {
	Device string
	Kind   KeyKind
	Line   string
	Signal string
}

func (k LineGroupKey) String() string {
	switch k.Kind {
	case KeyPMU:
		return k.Device + "|PMU"
	case KeyPhasor, KeyLine:
		return k.Device + "|PHASOR|" + k.Line
	case KeyFrequency:
		return k.Device + "|FREQ"
	default:
		return k.Device + "|" + k.Signal
	}
}

var (
	singlePMUPattern   = regexp.MustCompile(`^(.+?)[_-]PMU[_-][A-Z]{3}[0-9]$`)
	phaseSuffixPattern = regexp.MustCompile(`(?i)_+(IA|IB|IC|I0|I1|I2|VA|VB|VC|V0|V1|V2)$`)
	powerCalcPattern   = regexp.MustCompile(`POWER\s+CALC(?:ULATION)?S?\s*(?:FOR\b|:|-)?\s*([A-Z0-9_\-]+)`)
)

const calculatedValueMarker = "CALCULATED VALUE"

// DeriveKey computes the line-group key of a record.
func DeriveKey(rec MeasurementRecord) LineGroupKey {
	device := strings.ToUpper(strings.TrimSpace(rec.Device))

	if IsSinglePMUDevice(device) {
		return LineGroupKey{Device: device, Kind: KeyPMU}
	}
	if rec.IsPhasor() {
		return LineGroupKey{Device: device, Kind: KeyPhasor, Line: StripPhaseSuffix(rec.PhasorLabel)}
	}
	if line := ExtractLineName(device, rec.Description); line != "" {
		return LineGroupKey{Device: device, Kind: KeyLine, Line: line}
	}
	if rec.IsFrequency() {
		return LineGroupKey{Device: device, Kind: KeyFrequency}
	}
	return LineGroupKey{Device: device, Kind: KeySignal, Signal: rec.SignalID}
}

// IsSinglePMUDevice reports whether device follows the single-line PMU
// naming convention: <station>_PMU_<three letters><digit>.
func IsSinglePMUDevice(device string) bool {
	return singlePMUPattern.MatchString(strings.ToUpper(strings.TrimSpace(device)))
}

// pmuStation returns the station part of a single-line PMU device name.
func pmuStation(device string) string {
	m := singlePMUPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(device)))
	if m == nil {
		return ""
	}
	return m[1]
}

// StripPhaseSuffix upper-cases label and removes one trailing phase suffix
// such as _IA or __V1. Single trailing characters like _A are kept.
func StripPhaseSuffix(label string) string {
	s := strings.ToUpper(strings.TrimSpace(label))
	return phaseSuffixPattern.ReplaceAllString(s, "")
}

// ExtractLineName finds a line name in a free-text description. It returns
// "" when none of the recognized patterns yields a usable name.
func ExtractLineName(device, description string) string {
	desc := strings.ToUpper(strings.TrimSpace(description))
	if desc == "" {
		return ""
	}
	device = strings.ToUpper(strings.TrimSpace(device))

	if m := powerCalcPattern.FindStringSubmatch(desc); m != nil {
		if name := usableLineName(m[1]); name != "" {
			return name
		}
	}

	tokens := descriptionTokens(desc)
	at := deviceTokenIndex(tokens, device)
	if at < 0 {
		return ""
	}
	rest := tokens[at+1:]

	if i := strings.Index(desc, calculatedValueMarker); i >= 0 {
		between := descriptionTokens(desc[:i])
		if j := deviceTokenIndex(between, device); j >= 0 && j+1 < len(between) {
			if name := usableLineName(strings.Join(between[j+1:], "_")); name != "" {
				return name
			}
		}
	}

	if len(rest) == 0 {
		return ""
	}
	if !IsPhaseOrSignalWord(rest[0]) {
		return usableLineName(rest[0])
	}
	// The pair is read jointly as indicator plus name. Phasor labels are
	// keyed with their phase part stripped, so the name token alone is the
	// form that can meet a phasor group; INDICATOR_NAME never would.
	if len(rest) > 1 && !IsPhaseOrSignalWord(rest[1]) {
		return usableLineName(rest[1])
	}
	return ""
}

func descriptionTokens(desc string) []string {
	return strings.FieldsFunc(desc, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ';', ':', '(', ')', '[', ']':
			return true
		}
		return false
	})
}

func deviceTokenIndex(tokens []string, device string) int {
	if device == "" {
		return -1
	}
	for i, t := range tokens {
		if t == device {
			return i
		}
	}
	return -1
}

// usableLineName strips phase suffixes and rejects indicators and names
// without a letter.
func usableLineName(candidate string) string {
	name := strings.Trim(StripPhaseSuffix(candidate), "_-")
	if len(name) < 2 || IsPhaseOrSignalWord(name) {
		return ""
	}
	if strings.IndexFunc(name, func(r rune) bool { return r >= 'A' && r <= 'Z' }) < 0 {
		return ""
	}
	return name
}
