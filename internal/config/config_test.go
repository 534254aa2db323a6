package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mpx/internal/paths"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Company.Acronym != "" {
		t.Errorf("Acronym = %q, want empty", cfg.Company.Acronym)
	}
	if !cfg.Export.MapPowerQuantities {
		t.Error("power quantity mapping should be on by default")
	}
	if cfg.Export.PersistPointIDs {
		t.Error("persistence should be off by default")
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	if cfg.Company != want.Company || cfg.Export != want.Export || cfg.Database != want.Database || cfg.Logging != want.Logging {
		t.Errorf("LoadConfig = %+v, want defaults %+v", cfg, want)
	}
	if len(cfg.Naming.ExcludePrefixes) != 0 {
		t.Errorf("ExcludePrefixes = %v, want none", cfg.Naming.ExcludePrefixes)
	}
}

func TestSaveAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Company.Acronym = "ACME"
	cfg.Naming.ExcludePrefixes = []string{"TVA", "SOCO"}
	cfg.Export.PersistPointIDs = true
	cfg.Export.Gzip = true
	cfg.Database.Path = "data/points.db"
	cfg.Logging.MaxBackups = 5

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(paths.ConfigPath(root)); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	root := t.TempDir()
	if _, err := paths.EnsureWorkspace(root); err != nil {
		t.Fatal(err)
	}
	data := "[company]\nacronym = \"ACME\"\n\n[export]\ngzip = true\n"
	if err := os.WriteFile(paths.ConfigPath(root), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Company.Acronym != "ACME" || !cfg.Export.Gzip {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !cfg.Export.MapPowerQuantities || cfg.Export.Output != "points.csv" {
		t.Errorf("defaults lost: %+v", cfg.Export)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MPX_COMPANY_ACRONYM", "SOCO")
	t.Setenv("MPX_EXPORT_PERSIST_POINT_IDS", "true")
	t.Setenv("MPX_NAMING_EXCLUDE_PREFIXES", "TVA,XX")
	t.Setenv("MPX_LOGGING_MAX_BACKUPS", "7")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Company.Acronym != "SOCO" {
		t.Errorf("Acronym = %q, want SOCO", cfg.Company.Acronym)
	}
	if !cfg.Export.PersistPointIDs {
		t.Error("PersistPointIDs should be overridden")
	}
	if !reflect.DeepEqual(cfg.Naming.ExcludePrefixes, []string{"TVA", "XX"}) {
		t.Errorf("ExcludePrefixes = %v", cfg.Naming.ExcludePrefixes)
	}
	if cfg.Logging.MaxBackups != 7 {
		t.Errorf("MaxBackups = %d, want 7", cfg.Logging.MaxBackups)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	root := t.TempDir()
	if _, err := paths.EnsureWorkspace(root); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigPath(root), []byte("[company\nacronym="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(root); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"acronym punctuation", func(c *Config) { c.Company.Acronym = "AC-ME" }, "company.acronym"},
		{"empty prefix", func(c *Config) { c.Naming.ExcludePrefixes = []string{"TVA", " "} }, "naming.exclude_prefixes"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"max size", func(c *Config) { c.Logging.MaxSize = "huge" }, "logging.max_size"},
		{"backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("message %q should name the field", err.Error())
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()

	if got := cfg.DatabasePath(root); got != paths.DefaultDBPath(root) {
		t.Errorf("default DatabasePath = %q", got)
	}
	cfg.Database.Path = "data/mpx.db"
	if got, want := cfg.DatabasePath(root), filepath.Join(root, "data", "mpx.db"); got != want {
		t.Errorf("DatabasePath = %q, want %q", got, want)
	}
}
