// Package cmd provides Cobra CLI commands for tabstrip.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabstrip/internal/cli"
	"github.com/bnema/tabstrip/internal/domain/build"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "tabstrip",
		Short: "A keyboard driven tab strip with groups and undoable closures",
		Long: `Tabstrip - a tab collection and grouping engine you can drive from the terminal.

Features:
  - Normal and incognito tab models with an independent selection
  - Tab groups with titles, colors and collapse state
  - Closures that stay undoable until committed or timed out
  - Confirmation dialogs before synced or shared groups are destroyed
  - Session snapshots in SQLite, restored on the next start
  - Scripted YAML scenarios replayed with invariant checks

Use 'tabstrip tui' to open the interactive strip, or 'tabstrip replay'
to run scenario files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			if err := config.Init(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var err error
			app, err = cli.NewApp(config.Get())
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
