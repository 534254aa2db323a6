package main

import (
	"github.com/spf13/cobra"

	"mpx/internal/version"
)

var (
	workspaceFlag string
	dbFlag        string
	verbosity     int
	quietFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "mpx",
	Short: "mpx - measurement point identifier exporter",
	Long: `mpx assigns short, stable measurement point identifiers to synchrophasor
measurements and exports one row per (identifier, quantity).

Identifiers are derived from point tags, grouped per transmission line and made
unique within a run. Generated identifiers can be written back to the metadata
database so later runs reproduce them.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("mpx version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", ".",
		"Workspace root containing the .mpx directory")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"Database path (overrides database.path)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress all log output")
}
