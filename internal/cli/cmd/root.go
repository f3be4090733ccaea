// Package cmd provides Cobra CLI commands for tessellate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli"
	"github.com/bnema/tessellate/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "tessellate",
		Short: "Tiling layout producer and consumer for Wayland compositors",
		Long: `Tessellate - the layout core of a tiling compositor.

A layout producer turns a window count into a layout tree (or concrete
geometry); a consumer resolves it into one rectangle per window and applies
it atomically. Both sides talk over a unix socket with JSON lines.

Builtin strategies:
  - line          windows side by side along one axis
  - master_stack  master area plus a stack
  - dwindle       recursive halving, alternating axes
  - spiral        dwindle winding around the center
  - corner        one corner window plus two stacks
  - fair          near-square grid

Use 'tessellate serve' to run a producer and 'tessellate preview' or
'tessellate tui' to look at layouts without a compositor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}

			var err error
			app, err = cli.NewApp(configPath)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
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

// needsApp reports whether cmd works on a loaded config. Commands marked
// with the "standalone" annotation run without one.
func needsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete":
		return false
	}
	_, standalone := cmd.Annotations[annotationStandalone]
	return !standalone
}

const annotationStandalone = "standalone"

var standalone = map[string]string{annotationStandalone: "true"}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tessellate/config.toml)")
}

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
