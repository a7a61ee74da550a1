package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tabstrip/internal/application/port"
	"github.com/bnema/tabstrip/internal/application/scenario"
	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/domain/tabmodel"
	"github.com/bnema/tabstrip/internal/infrastructure/tabfactory"
	"github.com/bnema/tabstrip/internal/logging"
)

var replayQuiet bool

// errReplayFailed is returned once every scenario ran and at least one failed.
var errReplayFailed = errors.New("replay failed")

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml|dir>...",
	Short: "Replay scenario files against a fresh session",
	Long: `Replay scripted scenarios against a fresh in-memory session.

Each step runs one operation, then the model invariants are checked and the
step's expect block, if any, is compared against the selected model.
Directories are expanded to the *.yaml files they contain.

Example:
  tabstrip replay scenarios/close_undo.yaml
  tabstrip replay scenarios/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVarP(&replayQuiet, "quiet", "q", false, "only print scenario results")
}

func runReplay(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewReplayRenderer(app.Theme)

	files, err := scenarioFiles(args)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(scenario.Options{
		Logger: *logging.FromContext(app.Ctx()),
		NewCreator: func(session *tabmodel.Session, clock func() time.Time) port.TabCreator {
			return tabfactory.New(session, tabfactory.Config{Clock: clock, Logger: *logging.FromContext(app.Ctx())})
		},
	})

	var passed, failed int
	for _, path := range files {
		sc, err := scenario.Load(path)
		if err != nil {
			failed++
			fmt.Println(renderer.RenderFailed(path, err))
			continue
		}

		name := sc.Name
		if name == "" {
			name = filepath.Base(path)
		}
		if !replayQuiet {
			fmt.Println(renderer.RenderHeader(name, len(sc.Steps)))
		}

		report, err := runner.Run(app.Ctx(), sc)
		if !replayQuiet && report != nil {
			for _, step := range report.Steps {
				fmt.Println(renderer.RenderStep(step))
			}
		}
		if err != nil {
			failed++
			fmt.Println(renderer.RenderFailed(name, err))
			continue
		}
		passed++
		report.Name = name
		fmt.Println(renderer.RenderPassed(report))
	}

	fmt.Println(renderer.RenderSummary(passed, failed))
	if failed > 0 {
		return errReplayFailed
	}
	return nil
}

// scenarioFiles expands directories to their *.yaml and *.yml files.
func scenarioFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}
