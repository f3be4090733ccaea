package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:         "about",
	Aliases:     []string{"version"},
	Short:       "Show version and build information",
	Long:        `Display version, build info, repository URL, and contributors.`,
	Annotations: standalone,
	RunE:        runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(_ *cobra.Command, _ []string) error {
	renderer := styles.NewAboutRenderer(styles.NewTheme())
	fmt.Println(renderer.Render(buildInfo))
	return nil
}
