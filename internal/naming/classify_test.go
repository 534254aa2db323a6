package naming

import "testing"

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		tok  string
		want TokenKind
	}{
		{"GRAND", TokenName},
		{"gulf", TokenName},
		{"1", TokenUnit},
		{"07", TokenUnit},
		{"99", TokenUnit},
		{"100", TokenIgnored},
		{"SUB", TokenSystemPrefix},
		{"pmu", TokenSystemPrefix},
		{"LN", TokenStop},
		{"xfmr", TokenStop},
		{"AB", TokenIgnored},
		{"500KV", TokenIgnored},
		{"", TokenIgnored},
		{"  ", TokenIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			if got := ClassifyToken(tt.tok); got != tt.want {
				t.Errorf("ClassifyToken(%q) = %v, want %v", tt.tok, got, tt.want)
			}
		})
	}
}

func TestIsPhaseOrSignalWord(t *testing.T) {
	for _, w := range []string{"A", "voltage", "Current", "MAGNITUDE", "angle", "mw", "MVAR", "V1", "ia"} {
		if !IsPhaseOrSignalWord(w) {
			t.Errorf("IsPhaseOrSignalWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"BOGALUSA", "WEST_TIE", "LN", ""} {
		if IsPhaseOrSignalWord(w) {
			t.Errorf("IsPhaseOrSignalWord(%q) = true, want false", w)
		}
	}
}

func TestTokenKindString(t *testing.T) {
	if TokenName.String() != "name" {
		t.Errorf("TokenName.String() = %q", TokenName.String())
	}
	if TokenKind(42).String() != "ignored" {
		t.Errorf("unknown kind should render as ignored")
	}
}
