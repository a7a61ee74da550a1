package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/tabstrip/internal/cli/styles"
	"github.com/bnema/tabstrip/internal/infrastructure/config"
)

var (
	configSchemaJSON  bool
	configSchemaWrite bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the effective configuration, where it lives and every key it accepts.`,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List every configuration key",
	Long: `List every configuration key with its type, default and accepted values.

With --write, a JSON schema for editor completion is written next to
config.toml.`,
	RunE: runConfigSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config, database and log locations",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configSchemaCmd.Flags().BoolVar(&configSchemaJSON, "json", false, "output keys as JSON")
	configSchemaCmd.Flags().BoolVar(&configSchemaWrite, "write", false, "write "+config.SchemaFileName+" next to the config file")
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigSchemaRenderer(app.Theme)
	keys := config.NewSchemaProvider().GetSchema()

	if configSchemaWrite {
		configFile, err := config.GetConfigFile()
		if err != nil {
			return err
		}
		path := filepath.Join(filepath.Dir(configFile), config.SchemaFileName)
		if err := config.WriteSchemaFile(path); err != nil {
			return err
		}
		fmt.Println(styles.NewConfigRenderer(app.Theme).RenderWritten(path))
		return nil
	}

	if configSchemaJSON {
		out, err := renderer.RenderJSON(keys)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Println(renderer.Render(keys, config.Sections(keys)))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	data, err := config.EncodeOrdered(app.Config)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(renderer.RenderTOML(data))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	var configFile string
	if mgr := config.GetManager(); mgr != nil {
		configFile = mgr.GetConfigFile()
	}
	if configFile == "" {
		var err error
		if configFile, err = config.GetConfigFile(); err != nil {
			fmt.Println(renderer.RenderError(err))
			return err
		}
	}
	logDir := app.Config.Logging.LogDir
	if logDir == "" {
		var err error
		if logDir, err = config.GetLogDir(); err != nil {
			fmt.Println(renderer.RenderError(err))
			return err
		}
	}

	fmt.Println(renderer.RenderPaths(configFile, app.DatabasePath(), logDir))
	return nil
}
