package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mpx/internal/config"
	mpxerrors "mpx/internal/errors"
	"mpx/internal/paths"
)

var (
	configFormat  string
	configForce   bool
	configAcronym string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mpx configuration",
	Long:  "View and manage the configuration stored in .mpx/config.toml",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults and MPX_* environment overrides.

Examples:
  mpx config show
  mpx config show --format yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runConfigShow())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runConfigInit())
	},
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range envVarNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format (toml, yaml, json)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing configuration file")
	configInitCmd.Flags().StringVar(&configAcronym, "acronym", "", "Company acronym stripped from point tags")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow() error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return mpxerrors.New(mpxerrors.ConfigInvalid, "failed to load configuration", err)
	}
	return printResponse(os.Stdout, cfg, configFormat)
}

func runConfigInit() error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}
	path := paths.ConfigPath(root)
	if _, err := os.Stat(path); err == nil && !configForce {
		return mpxerrors.New(mpxerrors.ConfigInvalid, "configuration already exists; use --force to overwrite", nil).
			WithDetails(map[string]string{"path": path})
	}

	cfg := config.DefaultConfig()
	cfg.Company.Acronym = strings.ToUpper(configAcronym)
	if err := cfg.Validate(); err != nil {
		return mpxerrors.New(mpxerrors.ConfigInvalid, "invalid configuration", err)
	}
	if err := cfg.Save(root); err != nil {
		return mpxerrors.New(mpxerrors.ConfigInvalid, "failed to write configuration", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// envVarNames lists the MPX_* variables recognized by config.LoadConfig.
func envVarNames() []string {
	keys := []string{
		"company.acronym",
		"naming.exclude_prefixes",
		"export.map_power_quantities",
		"export.persist_point_ids",
		"export.output",
		"export.gzip",
		"database.path",
		"logging.level",
		"logging.format",
		"logging.file",
		"logging.max_size",
		"logging.max_backups",
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
	}
	sort.Strings(names)
	return names
}
