// Package config loads mpx settings from .mpx/config.toml with MPX_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"mpx/internal/paths"
	"mpx/internal/slogutil"
)

// EnvPrefix prefixes environment overrides, e.g. MPX_COMPANY_ACRONYM.
const EnvPrefix = "MPX"

// Config is the complete mpx configuration.
type Config struct {
	Company  CompanyConfig  `toml:"company" mapstructure:"company" json:"company" yaml:"company"`
	Naming   NamingConfig   `toml:"naming" mapstructure:"naming" json:"naming" yaml:"naming"`
	Export   ExportConfig   `toml:"export" mapstructure:"export" json:"export" yaml:"export"`
	Database DatabaseConfig `toml:"database" mapstructure:"database" json:"database" yaml:"database"`
	Logging  LoggingConfig  `toml:"logging" mapstructure:"logging" json:"logging" yaml:"logging"`
}

// CompanyConfig identifies the owning organization.
type CompanyConfig struct {
	// Acronym is stripped from point tags before any other prefix.
	Acronym string `toml:"acronym" mapstructure:"acronym" json:"acronym" yaml:"acronym"`
}

// NamingConfig controls base identifier generation.
type NamingConfig struct {
	// ExcludePrefixes are stripped from point tags in order, after the acronym.
	ExcludePrefixes []string `toml:"exclude_prefixes" mapstructure:"exclude_prefixes" json:"excludePrefixes" yaml:"exclude_prefixes"`
}

// ExportConfig controls the export command.
type ExportConfig struct {
	MapPowerQuantities bool   `toml:"map_power_quantities" mapstructure:"map_power_quantities" json:"mapPowerQuantities" yaml:"map_power_quantities"`
	PersistPointIDs    bool   `toml:"persist_point_ids" mapstructure:"persist_point_ids" json:"persistPointIds" yaml:"persist_point_ids"`
	Output             string `toml:"output" mapstructure:"output" json:"output" yaml:"output"`
	Gzip               bool   `toml:"gzip" mapstructure:"gzip" json:"gzip" yaml:"gzip"`
}

// DatabaseConfig locates the SQLite database. An empty path means
// .mpx/mpx.db; a relative one is resolved against the workspace root.
type DatabaseConfig struct {
	Path string `toml:"path" mapstructure:"path" json:"path" yaml:"path"`
}

// LoggingConfig controls the logger built by the CLI.
type LoggingConfig struct {
	Level      string `toml:"level" mapstructure:"level" json:"level" yaml:"level"`
	Format     string `toml:"format" mapstructure:"format" json:"format" yaml:"format"`
	File       string `toml:"file" mapstructure:"file" json:"file" yaml:"file"`
	MaxSize    string `toml:"max_size" mapstructure:"max_size" json:"maxSize" yaml:"max_size"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups" json:"maxBackups" yaml:"max_backups"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Naming: NamingConfig{ExcludePrefixes: []string{}},
		Export: ExportConfig{
			MapPowerQuantities: true,
			Output:             "points.csv",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("company.acronym", d.Company.Acronym)
	v.SetDefault("naming.exclude_prefixes", d.Naming.ExcludePrefixes)
	v.SetDefault("export.map_power_quantities", d.Export.MapPowerQuantities)
	v.SetDefault("export.persist_point_ids", d.Export.PersistPointIDs)
	v.SetDefault("export.output", d.Export.Output)
	v.SetDefault("export.gzip", d.Export.Gzip)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// LoadConfig reads <root>/.mpx/config.toml. A missing file yields the
// defaults; environment overrides apply either way.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := paths.ConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.mpx/config.toml.
func (c *Config) Save(root string) error {
	if _, err := paths.EnsureWorkspace(root); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigPath(root))
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks the configuration for values the exporter cannot use.
func (c *Config) Validate() error {
	if !isAlphanumeric(c.Company.Acronym) {
		return &ConfigError{Field: "company.acronym", Message: "must contain only letters and digits"}
	}
	for i, p := range c.Naming.ExcludePrefixes {
		if strings.TrimSpace(p) == "" {
			return &ConfigError{Field: "naming.exclude_prefixes", Message: fmt.Sprintf("entry %d is empty", i)}
		}
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	if _, err := slogutil.ParseSize(c.Logging.MaxSize); err != nil {
		return &ConfigError{Field: "logging.max_size", Message: err.Error()}
	}
	if c.Logging.MaxBackups < 0 {
		return &ConfigError{Field: "logging.max_backups", Message: "must not be negative"}
	}
	return nil
}

// DatabasePath resolves the database file for the workspace at root.
func (c *Config) DatabasePath(root string) string {
	return paths.Resolve(root, c.Database.Path, paths.DefaultDBPath(root))
}

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
