package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"mpx/internal/config"
	mpxerrors "mpx/internal/errors"
	"mpx/internal/paths"
	"mpx/internal/slogutil"
	"mpx/internal/storage"
)

// workspaceRoot returns the absolute workspace root.
func workspaceRoot() (string, error) {
	root, err := filepath.Abs(workspaceFlag)
	if err != nil {
		return "", mpxerrors.New(mpxerrors.ConfigInvalid, "invalid workspace path", err)
	}
	return root, nil
}

// loadConfig loads and validates the workspace configuration.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, mpxerrors.New(mpxerrors.ConfigInvalid, "failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, mpxerrors.New(mpxerrors.ConfigInvalid, "invalid configuration", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger on stderr. When logging.file is set the
// records are also written to that file, rotated by size. The returned closer
// is never nil.
func newLogger(root string, cfg *config.Config) (*slog.Logger, io.Closer, error) {
	level := slogutil.LevelFromVerbosity(verbosity, quietFlag, slogutil.LevelFromString(cfg.Logging.Level))
	format := slogutil.ParseFormat(cfg.Logging.Format)
	stderr := slogutil.NewHandler(os.Stderr, level, format)

	if cfg.Logging.File == "" {
		return slog.New(stderr), nopCloser{}, nil
	}

	maxSize, err := slogutil.ParseSize(cfg.Logging.MaxSize)
	if err != nil {
		return nil, nil, mpxerrors.New(mpxerrors.ConfigInvalid, "invalid logging.max_size", err)
	}
	path := paths.Resolve(root, cfg.Logging.File, paths.DefaultLogPath(root))
	file, err := slogutil.OpenRotatingFile(path, maxSize, cfg.Logging.MaxBackups)
	if err != nil {
		return nil, nil, mpxerrors.New(mpxerrors.ConfigInvalid, "failed to open log file", err)
	}

	// The file always records at least info, whatever the terminal shows.
	fileLevel := min(level, slog.LevelInfo)
	logger := slog.New(slogutil.NewTeeHandler(stderr, slogutil.NewHandler(file, fileLevel, format)))
	return logger, file, nil
}

// openStore opens the measurement database.
func openStore(root string, cfg *config.Config, logger *slog.Logger) (*storage.DB, error) {
	path := cfg.DatabasePath(root)
	if dbFlag != "" {
		path = paths.Resolve(root, dbFlag, path)
	}
	db, err := storage.Open(path, logger)
	if err != nil {
		return nil, mpxerrors.New(mpxerrors.SourceUnavailable, "failed to open database", err).
			WithDetails(map[string]string{"path": path})
	}
	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newContext returns a context cancelled on SIGINT or SIGTERM.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// env bundles what most commands need.
type env struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func setup() (*env, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	logger, closer, err := newLogger(root, cfg)
	if err != nil {
		return nil, err
	}
	return &env{root: root, cfg: cfg, logger: logger, closer: closer}, nil
}

func (e *env) Close() {
	_ = e.closer.Close()
}

// reportError prints err and its suggested fixes to stderr.
func reportError(err error) {
	var mpxErr *mpxerrors.MpxError
	if !errors.As(err, &mpxErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", mpxErr)
	for _, fix := range mpxErr.SuggestedFixes {
		switch fix.Type {
		case mpxerrors.RunCommand:
			fmt.Fprintf(os.Stderr, "  try: %s  (%s)\n", fix.Command, fix.Description)
		case mpxerrors.EditConfig:
			fmt.Fprintf(os.Stderr, "  set %s: %s\n", fix.Key, fix.Description)
		}
	}
}

// exitOnError reports err and exits with status 1.
func exitOnError(err error) {
	if err == nil {
		return
	}
	reportError(err)
	os.Exit(1)
}
