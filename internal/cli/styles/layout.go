package styles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// LayoutRenderer renders layout previews and producer status lines.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// PreviewView is everything a rendered preview shows.
type PreviewView struct {
	Strategy   string
	Output     entity.OutputName
	Area       entity.Rect
	Placements []entity.Placement
	MapCols    int
	MapRows    int
}

// RenderPreview renders a header, the placement table and the layout map.
func (r *LayoutRenderer) RenderPreview(v PreviewView) string {
	header := fmt.Sprintf("%s %s  %s  %s",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconLayout),
		r.theme.StrategyBadge(v.Strategy),
		r.theme.Subtle.Render(fmt.Sprintf("%d windows", len(v.Placements))),
		r.theme.Subtle.Render(fmt.Sprintf("%dx%d+%d+%d", v.Area.Width, v.Area.Height, v.Area.X, v.Area.Y)),
	)
	if v.Output != "" {
		header += "  " + r.theme.MutedBadge(string(v.Output))
	}

	rects := make([]entity.Rect, len(v.Placements))
	for i, p := range v.Placements {
		rects[i] = p.Rect
	}

	mapView := r.theme.Box.Padding(0).Render(RenderLayoutMap(r.theme, v.Area, rects, v.MapCols, v.MapRows))
	return strings.Join([]string{
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, RenderPlacementTable(r.theme, v.Placements), "  ", mapView),
	}, "\n")
}

// RenderServing renders the producer start banner.
func (r *LayoutRenderer) RenderServing(socketPath string, cycle []string, mode string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	badges := make([]string, len(cycle))
	for i, name := range cycle {
		if i == 0 {
			badges[i] = r.theme.StrategyBadge(name)
			continue
		}
		badges[i] = r.theme.MutedBadge(name)
	}
	return fmt.Sprintf(
		"\n  %s Listening on %s\n  %s Cycle %s\n  %s Mode %s\n",
		iconStyle.Render(IconSocket), r.theme.Highlight.Render(socketPath),
		iconStyle.Render(IconCycle), strings.Join(badges, " "),
		iconStyle.Render(IconTree), r.theme.Normal.Render(mode),
	)
}

// RenderStrategies lists the builtin strategies and marks those in cycle.
func (r *LayoutRenderer) RenderStrategies(builtin, cycle []string) string {
	var lines []string
	lines = append(lines, r.theme.Title.Render("Strategies"), "")
	for _, name := range builtin {
		pos := slices.Index(cycle, name)
		switch {
		case pos == 0:
			lines = append(lines, fmt.Sprintf("  %s %s  %s",
				r.theme.SuccessStyle.Render(IconCheck), r.theme.Highlight.Render(name), r.theme.Subtle.Render("default")))
		case pos > 0:
			lines = append(lines, fmt.Sprintf("  %s %s  %s",
				r.theme.SuccessStyle.Render(IconCheck), r.theme.Normal.Render(name), r.theme.Subtle.Render(fmt.Sprintf("cycle #%d", pos+1))))
		default:
			lines = append(lines, fmt.Sprintf("  %s %s", r.theme.Subtle.Render("·"), r.theme.Subtle.Render(name)))
		}
	}
	return r.theme.Box.Render(strings.Join(lines, "\n"))
}

// RenderCycled renders the acknowledgement of a cycle command.
func (r *LayoutRenderer) RenderCycled(tag entity.TagID, direction string) string {
	return fmt.Sprintf("  %s tag %d cycled %s",
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(IconCycle),
		tag,
		r.theme.Highlight.Render(direction),
	)
}

// RenderError renders an error message.
func (r *LayoutRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
