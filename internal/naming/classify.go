package naming

import "strings"

// TokenKind classifies a point-tag token.
type TokenKind int

const (
	// TokenIgnored is neither a name, a unit nor a marker (short or mixed tokens).
	TokenIgnored TokenKind = iota
	// TokenSystemPrefix is a facility or role marker skipped at the head of a tag.
	TokenSystemPrefix
	// TokenUnit is an integer unit number 0-99.
	TokenUnit
	// TokenStop ends name collection.
	TokenStop
	// TokenName is an alphabetic token of at least three letters.
	TokenName
)

func (k TokenKind) String() string {
	switch k {
	case TokenSystemPrefix:
		return "system-prefix"
	case TokenUnit:
		return "unit"
	case TokenStop:
		return "stop"
	case TokenName:
		return "name"
	default:
		return "ignored"
	}
}

var systemPrefixes = map[string]struct{}{
	"SUB":   {},
	"SS":    {},
	"STN":   {},
	"STA":   {},
	"SW":    {},
	"SWYD":  {},
	"PLANT": {},
	"PMU":   {},
	"PDC":   {},
}

var stopMarkers = map[string]struct{}{
	"LN":   {},
	"LINE": {},
	"XFMR": {},
	"XF":   {},
	"TR":   {},
	"BUS":  {},
	"BK":   {},
	"CB":   {},
	"BRK":  {},
	"GEN":  {},
	"FREQ": {},
	"DFDT": {},
	"STAT": {},
	"FLAG": {},
	"ALOG": {},
	"DIGI": {},
	"CALC": {},
}

// phaseSignalWords can never be a line name.
var phaseSignalWords = map[string]struct{}{
	"A": {}, "B": {}, "C": {}, "N": {},
	"AN": {}, "BN": {}, "CN": {}, "AB": {}, "BC": {}, "CA": {},
	"V": {}, "I": {},
	"IA": {}, "IB": {}, "IC": {}, "IN": {}, "I0": {}, "I1": {}, "I2": {},
	"VA": {}, "VB": {}, "VC": {}, "VN": {}, "V0": {}, "V1": {}, "V2": {},
	"PH": {}, "PHASE": {}, "POS": {}, "NEG": {}, "ZERO": {}, "SEQ": {},
	"VOLTAGE": {}, "VOLTS": {}, "CURRENT": {}, "AMPS": {},
	"MAGNITUDE": {}, "MAG": {}, "ANGLE": {}, "ANG": {},
	"MW": {}, "MVAR": {}, "MVA": {}, "KW": {}, "KVAR": {},
	"WATTS": {}, "VARS": {}, "POWER": {}, "PF": {},
	"REAL": {}, "REACTIVE": {}, "APPARENT": {},
	"FREQ": {}, "FREQUENCY": {}, "DFDT": {},
}

// ClassifyToken classifies a single token produced by splitting a point tag.
func ClassifyToken(tok string) TokenKind {
	t := strings.ToUpper(strings.TrimSpace(tok))
	if t == "" {
		return TokenIgnored
	}
	if _, ok := systemPrefixes[t]; ok {
		return TokenSystemPrefix
	}
	if _, ok := stopMarkers[t]; ok {
		return TokenStop
	}
	if isUnitToken(t) {
		return TokenUnit
	}
	if len(t) >= 3 && isAlpha(t) {
		return TokenName
	}
	return TokenIgnored
}

// IsPhaseOrSignalWord reports whether word is a phase or signal-type indicator.
func IsPhaseOrSignalWord(word string) bool {
	_, ok := phaseSignalWords[strings.ToUpper(strings.TrimSpace(word))]
	return ok
}

func isUnitToken(t string) bool {
	if len(t) == 0 || len(t) > 2 {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return false
		}
	}
	return true
}

func isAlpha(t string) bool {
	for i := 0; i < len(t); i++ {
		c := t[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
