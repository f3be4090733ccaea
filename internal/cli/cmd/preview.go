package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/cli/styles"
	"github.com/bnema/tessellate/internal/domain/resolver"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/protocol"
)

var (
	previewStrategy  string
	previewWindows   int
	previewArea      string
	previewTree      bool
	previewJSON      bool
	previewMapWidth  int
	previewMapHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Resolve one strategy locally and show the placements",
	Long: `Build the layout tree of a strategy for a number of windows, resolve it
inside an area and show the placements as a table and a map. Strategy
parameters and gaps come from the config file.

Examples:
  tessellate preview --strategy dwindle -n 5
  tessellate preview -S corner -n 4 --area 2560x1440
  tessellate preview -S fair -n 7 --tree     # print the wire tree
  tessellate preview -n 3 --json             # machine-readable placements`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&previewStrategy, "strategy", "S", "", "strategy name (default: layout.default_strategy)")
	previewCmd.Flags().IntVarP(&previewWindows, "windows", "n", 3, "number of windows")
	previewCmd.Flags().StringVarP(&previewArea, "area", "a", "1920x1080", "usable area WIDTHxHEIGHT[+X+Y]")
	previewCmd.Flags().BoolVar(&previewTree, "tree", false, "print the layout tree as sent on the wire")
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "print placements as JSON")
	previewCmd.Flags().IntVar(&previewMapWidth, "map-width", 60, "map width in columns")
	previewCmd.Flags().IntVar(&previewMapHeight, "map-height", 18, "map height in rows")
}

func runPreview(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	area, err := parseArea(previewArea)
	if err != nil {
		return err
	}

	name := previewStrategy
	if name == "" {
		name = app.Config.Layout.DefaultStrategy
	}
	s, err := strategy.Build(name, app.Config.StrategyParams()[name])
	if err != nil {
		return err
	}

	root := s.Layout(previewWindows)
	if previewTree {
		out, err := json.MarshalIndent(protocol.NodeFromEntity(root), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tree: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	res, err := resolver.Compute(root, area, previewWindows)
	if err != nil {
		return err
	}
	placements, err := usecase.AssignWindows(windowIDs(previewWindows), res.Rects)
	if err != nil {
		return err
	}

	if previewJSON {
		out, err := json.MarshalIndent(placements, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal placements: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	renderer := styles.NewLayoutRenderer(app.Theme)
	fmt.Println(renderer.RenderPreview(styles.PreviewView{
		Strategy:   s.Name(),
		Area:       area,
		Placements: placements,
		MapCols:    previewMapWidth,
		MapRows:    previewMapHeight,
	}))
	if res.DegenerateSplits > 0 {
		fmt.Println(app.Theme.WarningStyle.Render(fmt.Sprintf(
			"%s %d split(s) had no room left after gaps", styles.IconWarning, res.DegenerateSplits)))
	}
	return nil
}
