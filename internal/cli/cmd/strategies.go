package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List builtin strategies and the configured cycle",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		renderer := styles.NewLayoutRenderer(app.Theme)
		fmt.Println(renderer.RenderStrategies(strategy.Names(), app.Config.Layout.Cycle))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
