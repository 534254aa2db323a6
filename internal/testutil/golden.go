// Package testutil provides golden file helpers for tests.
package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Use: go test ./... -run TestGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate reports whether -update was given.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden fails t with a diff when got differs from the file at path.
// With -update the file is rewritten instead.
func CompareGolden(t *testing.T, path string, got []byte) {
	t.Helper()

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("Failed to write golden file: %v", err)
		}
		t.Logf("Updated golden: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create it", path, got)
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("Golden mismatch for %s:\n%s\nRun with -update to refresh", path, Diff(string(want), string(got)))
	}
}

// Diff returns a line diff of want and got, marking removed lines with "-"
// and added lines with "+". Equal lines are shown only near a change.
func Diff(want, got string) string {
	const context = 2

	a := strings.Split(want, "\n")
	b := strings.Split(got, "\n")
	n := max(len(a), len(b))

	changed := make([]bool, n)
	for i := 0; i < n; i++ {
		changed[i] = i >= len(a) || i >= len(b) || a[i] != b[i]
	}
	near := func(i int) bool {
		for j := max(0, i-context); j <= min(n-1, i+context); j++ {
			if changed[j] {
				return true
			}
		}
		return false
	}

	var buf bytes.Buffer
	gap := false
	for i := 0; i < n; i++ {
		switch {
		case changed[i]:
			if i < len(a) {
				fmt.Fprintf(&buf, "-%s\n", a[i])
			}
			if i < len(b) {
				fmt.Fprintf(&buf, "+%s\n", b[i])
			}
			gap = false
		case near(i):
			fmt.Fprintf(&buf, " %s\n", a[i])
			gap = false
		case !gap:
			buf.WriteString("...\n")
			gap = true
		}
	}
	return buf.String()
}
