// Package paths locates the per-workspace .mpx directory and its files.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// WorkspaceDirName is created inside the workspace root.
	WorkspaceDirName = ".mpx"

	configFileName = "config.toml"
	dbFileName     = "mpx.db"
	logFileName    = "mpx.log"
)

// WorkspaceDir returns <root>/.mpx.
func WorkspaceDir(root string) string {
	return filepath.Join(root, WorkspaceDirName)
}

// ConfigPath returns <root>/.mpx/config.toml.
func ConfigPath(root string) string {
	return filepath.Join(WorkspaceDir(root), configFileName)
}

// DefaultDBPath returns <root>/.mpx/mpx.db.
func DefaultDBPath(root string) string {
	return filepath.Join(WorkspaceDir(root), dbFileName)
}

// DefaultLogPath returns <root>/.mpx/mpx.log.
func DefaultLogPath(root string) string {
	return filepath.Join(WorkspaceDir(root), logFileName)
}

// EnsureWorkspace creates <root>/.mpx if needed and returns its path.
func EnsureWorkspace(root string) (string, error) {
	dir := WorkspaceDir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// Resolve returns p unchanged when absolute and joined to root otherwise.
// An empty p resolves to fallback.
func Resolve(root, p, fallback string) string {
	switch {
	case p == "":
		return fallback
	case filepath.IsAbs(p):
		return filepath.Clean(p)
	default:
		return filepath.Join(root, p)
	}
}
