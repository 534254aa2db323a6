package slogutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLineHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, FormatText)

	logger.Info("Export completed", "rows", 12, "device", "PMU1")

	out := buf.String()
	for _, want := range []string{"[info]", "Export completed", " | rows=12 device=PMU1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("line should end with a newline")
	}
}

func TestLineHandlerNoAttrs(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo, FormatText).Info("plain")
	if strings.Contains(buf.String(), "|") {
		t.Errorf("unexpected separator in %q", buf.String())
	}
}

func TestLineHandlerLevels(t *testing.T) {
	tests := []struct {
		log  func(*slog.Logger)
		want string
	}{
		{func(l *slog.Logger) { l.Debug("m") }, "[debug]"},
		{func(l *slog.Logger) { l.Info("m") }, "[info]"},
		{func(l *slog.Logger) { l.Warn("m") }, "[warn]"},
		{func(l *slog.Logger) { l.Error("m") }, "[error]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, slog.LevelDebug, FormatText))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLineHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, FormatText)
	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn should pass a warn-level handler")
	}
}

func TestLineHandlerAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, FormatText).
		With("run", "r1").
		WithGroup("persist")

	logger.Info("done", "written", 3, "took", 2*time.Second)

	out := buf.String()
	for _, want := range []string{"run=r1", "persist.written=3", "persist.took=2s"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo, ParseFormat("JSON")).Info("hello", "rows", 4)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "hello" || rec["rows"] != float64(4) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("json")
	}
	for _, s := range []string{"", "text", "xml"} {
		if ParseFormat(s) != FormatText {
			t.Errorf("ParseFormat(%q) should be text", s)
		}
	}
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{5, false, slog.LevelDebug},
		{2, true, LevelSilent},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet, slog.LevelWarn); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled")
	}
}

func TestTeeHandler(t *testing.T) {
	var text, js bytes.Buffer
	logger := slog.New(NewTeeHandler(
		NewHandler(&text, slog.LevelWarn, FormatText),
		NewHandler(&js, slog.LevelDebug, FormatJSON),
	)).With("run", "r1")

	logger.Info("only json")
	logger.Warn("both")

	if strings.Contains(text.String(), "only json") {
		t.Error("text handler should filter info")
	}
	if !strings.Contains(text.String(), "both") || !strings.Contains(text.String(), "run=r1") {
		t.Errorf("text output %q", text.String())
	}
	if strings.Count(js.String(), "\n") != 2 {
		t.Errorf("json handler should receive two records, got %q", js.String())
	}
}
