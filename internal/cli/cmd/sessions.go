package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tabstrip/internal/application/usecase"
	"github.com/bnema/tabstrip/internal/cli"
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/entity"
)

const defaultSessionsLimit = 20

var (
	sessionsJSON  bool
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage recorded sessions",
	Long: `View and delete recorded tab strip sessions.

Every 'tabstrip tui' run records a session and snapshots its normal tabs.
The latest snapshot is restored on the next start unless --no-restore is
given.`,
}

// sessions list
var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Long: `List recorded sessions with their tab and group counts.

Sessions are marked as:
  ● current  - the session of this process
  ○ active   - another running tabstrip instance
  (blank)    - ended session available for restoration`,
	RunE: runSessionsList,
}

// sessions delete <id>
var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a recorded session",
	Long: `Delete a recorded session and its snapshot.

Active sessions cannot be deleted. You can use a short suffix of the
session ID as long as it's unique.

Example:
  tabstrip sessions delete 20260224_143022_abc1
  tabstrip sessions delete abc1`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsListCmd.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
	sessionsListCmd.Flags().IntVar(&sessionsLimit, "limit", defaultSessionsLimit, "maximum sessions to show")
}

func runSessionsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sessions, err := listSessions(app, sessionsLimit)
	if err != nil {
		return err
	}

	if sessionsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	renderer := styles.NewSessionsCLIRenderer(app.Theme)
	if len(sessions) == 0 {
		fmt.Println(renderer.RenderEmptyList())
		return nil
	}
	fmt.Println(renderer.RenderList(sessions, sessionsLimit))
	return nil
}

func runSessionsDelete(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewSessionsCLIRenderer(app.Theme)

	info, err := findSessionByIDOrSuffix(app, args[0])
	if err != nil {
		return err
	}

	repos, err := app.Repositories(app.Ctx())
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	sessionUC := usecase.NewManageSessionUseCase(repos.Sessions)
	if err := sessionUC.DeleteSession(app.Ctx(), info.Session.ID); err != nil {
		if errors.Is(err, usecase.ErrSessionActive) {
			fmt.Println(renderer.RenderError(fmt.Errorf("session %s is still running", info.Session.ID)))
			return err
		}
		return fmt.Errorf("delete session: %w", err)
	}

	fmt.Println(renderer.RenderDeleted(info.Session.ID))
	return nil
}

func listSessions(app *cli.App, limit int) ([]entity.SessionInfo, error) {
	repos, err := app.Repositories(app.Ctx())
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	// The CLI process never owns a session, so none is current.
	out, err := usecase.NewListSessionsUseCase(repos.Sessions, repos.States).Execute(app.Ctx(), "", limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out.Sessions, nil
}

// findSessionByIDOrSuffix finds a session by exact ID or unique suffix.
func findSessionByIDOrSuffix(app *cli.App, idOrSuffix string) (*entity.SessionInfo, error) {
	sessions, err := listSessions(app, defaultSessionsLimit*5)
	if err != nil {
		return nil, err
	}

	var matches []entity.SessionInfo
	for _, info := range sessions {
		if string(info.Session.ID) == idOrSuffix {
			return &info, nil
		}
		if strings.HasSuffix(string(info.Session.ID), idOrSuffix) {
			matches = append(matches, info)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session found matching '%s'", idOrSuffix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous session ID '%s' matches %d sessions - be more specific", idOrSuffix, len(matches))
	}
}
