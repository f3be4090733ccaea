package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/infrastructure/config"
)

var (
	configForce   bool
	configSection string
	configJSON    bool
	configDryRun  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the config file lives, write a default one, list every key or check a file.`,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show the config file path",
	Annotations: standalone,
	RunE:        runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file and its JSON schema",
	Long: `Write a config file holding every default value, plus config.schema.json
next to it for editor completion. An existing file is kept unless --force
is given.`,
	Annotations: standalone,
	RunE:        runConfigInit,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every config key with its type and default",
	Long: `List every configuration key with its type, default, description and
accepted values.

Examples:
  tessellate config keys
  tessellate config keys --section strategies
  tessellate config keys --json`,
	Annotations: standalone,
	RunE:        runConfigKeys,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing keys and drop unknown ones from the config file",
	Long: `Compare the config file with the current defaults. Missing keys are added
with their default value, renamed keys keep their value and unknown keys are
dropped. Use --dry-run to only print the changes.`,
	Annotations: standalone,
	RunE:        runConfigMigrate,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the config file and report problems",
	Long:  `Load the config file the way every other command does and report whether it is valid.`,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configKeysCmd, configMigrateCmd, configValidateCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configKeysCmd.Flags().StringVar(&configSection, "section", "", "only show keys of this section")
	configKeysCmd.Flags().BoolVar(&configJSON, "json", false, "print keys as JSON")
	configMigrateCmd.Flags().BoolVarP(&configDryRun, "dry-run", "n", false, "only print the changes")
}

// resolveConfigFile returns the --config path or the XDG default.
func resolveConfigFile() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigFile()
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.NewTheme())

	path, err := resolveConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	_, statErr := os.Stat(path)
	fmt.Println(renderer.RenderPath(path, statErr == nil))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	renderer := styles.NewConfigRenderer(styles.NewTheme())

	path, err := resolveConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}

	if _, statErr := os.Stat(path); statErr == nil && !configForce {
		fmt.Println(renderer.RenderExists(path))
		return nil
	} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, statErr)
	}

	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	schemaPath := config.SchemaPathFor(path)
	if err := config.GenerateSchemaFile(schemaPath); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}

	fmt.Println(renderer.RenderCreated(path, schemaPath))
	return nil
}

func runConfigKeys(_ *cobra.Command, _ []string) error {
	uc := usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider())
	out, err := uc.Execute(context.Background(), usecase.GetConfigSchemaInput{Section: configSection})
	if err != nil {
		return err
	}

	renderer := styles.NewConfigSchemaRenderer(styles.NewTheme())
	if configJSON {
		data, err := renderer.RenderJSON(out.Keys)
		if err != nil {
			return err
		}
		fmt.Println(data)
		return nil
	}
	fmt.Println(renderer.Render(out.Keys))
	return nil
}

func runConfigMigrate(_ *cobra.Command, _ []string) error {
	theme := styles.NewTheme()
	renderer := styles.NewConfigRenderer(theme)

	path, err := resolveConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}

	uc := usecase.NewMigrateConfigUseCase(config.NewMigrator(path), config.NewDiffFormatter())
	ctx := context.Background()

	diff, err := uc.DetectChanges(ctx, usecase.DetectChangesInput{})
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(diff.DiffText)
	if !diff.HasChanges || configDryRun {
		return nil
	}

	out, err := uc.Execute(ctx, usecase.MigrateConfigInput{})
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Printf("%s %d change(s) written to %s\n",
		theme.SuccessStyle.Render(styles.IconCheck),
		len(out.AppliedKeys),
		theme.Subtle.Render(out.ConfigFile))
	return nil
}

func runConfigValidate(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	// Loading already validated the file; check the derived pieces too.
	if _, err := app.Config.BuildCycle(); err != nil {
		return err
	}
	if _, err := app.Config.ConsumerSettings(); err != nil {
		return err
	}

	theme := app.Theme
	fmt.Printf("\n  %s %s is valid\n\n",
		theme.SuccessStyle.Render(styles.IconCheck),
		theme.Subtle.Render(app.Manager.GetConfigFile()))
	return nil
}
