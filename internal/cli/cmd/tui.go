package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tabstrip/internal/bootstrap"
	"github.com/bnema/tabstrip/internal/cli/model"
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/entity"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
	"github.com/bnema/tabstrip/internal/logging"
)

var (
	tuiRestore   string
	tuiNoRestore bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive tab strip",
	Long: `Open the interactive tab strip.

With persistence enabled the latest snapshot is restored on start and the
normal tabs are saved while you work. Use --restore to pick a session from
'tabstrip sessions list', or --no-restore to start empty.

Example:
  tabstrip tui
  tabstrip tui --restore 20260224_143022_abc1
  tabstrip tui --no-restore`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiRestore, "restore", "", "restore the given session instead of the latest one")
	tuiCmd.Flags().BoolVar(&tuiNoRestore, "no-restore", false, "start without restoring a previous session")
	tuiCmd.MarkFlagsMutuallyExclusive("restore", "no-restore")
}

func runTUI(_ *cobra.Command, _ []string) (err error) {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewSessionsCLIRenderer(app.Theme)

	ctx, err := app.InteractiveContext()
	if err != nil {
		return err
	}

	opts := bootstrap.Options{
		Type:      entity.SessionTypeInteractive,
		Restore:   !tuiNoRestore,
		RestoreID: entity.SessionID(tuiRestore),
	}
	if app.Config.Persistence.Enabled {
		opts.LockDir = app.LockDir()
	}

	ws, wsCtx, err := bootstrap.StartWorkspace(ctx, app.Config, opts)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer func() {
		if endErr := ws.End(wsCtx); endErr != nil {
			err = errors.Join(err, endErr)
		}
	}()

	if ws.Restored != nil {
		logging.FromContext(wsCtx).Info().
			Int("tabs", len(ws.Restored.Tabs)).
			Int("skipped", ws.Restored.Skipped).
			Msg("previous session restored")
	}

	p := tea.NewProgram(model.NewTabStripModel(wsCtx, app.Theme, ws), tea.WithAltScreen())

	// Reloads arrive on the watcher goroutine and are handed to the model.
	config.OnConfigChange(func(cfg *config.Config) {
		p.Send(model.ConfigChangedMsg{Config: cfg})
	})
	if err := config.Watch(); err != nil {
		logging.FromContext(wsCtx).Debug().Err(err).Msg("config watch unavailable")
	}
	if _, err := p.Run(); err != nil {
		return err
	}

	if ws.Restored != nil {
		fmt.Println(renderer.RenderRestored(ws.Restored))
	}
	return nil
}
