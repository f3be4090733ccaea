package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

var placementHeaders = []string{"Window", "X", "Y", "Width", "Height"}

// PlacementColumns returns columns for the placement table.
func PlacementColumns() []table.Column {
	cols := make([]table.Column, len(placementHeaders))
	for i, h := range placementHeaders {
		width := 7
		if i == 0 {
			width = 12
		}
		cols[i] = table.Column{Title: h, Width: width}
	}
	return cols
}

// PlacementRows converts placements to table rows.
func PlacementRows(placements []entity.Placement) []table.Row {
	rows := make([]table.Row, len(placements))
	for i, p := range placements {
		rows[i] = table.Row{
			string(p.Window),
			strconv.Itoa(p.Rect.X),
			strconv.Itoa(p.Rect.Y),
			strconv.Itoa(p.Rect.Width),
			strconv.Itoa(p.Rect.Height),
		}
	}
	return rows
}

// RenderPlacementTable renders placements as a bordered static table.
func RenderPlacementTable(theme *Theme, placements []entity.Placement) string {
	if len(placements) == 0 {
		return theme.Subtle.Render("No windows")
	}

	rows := PlacementRows(placements)
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = r
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	labelStyle := cellStyle.Foreground(WindowColor(0))

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(placementHeaders...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle.Foreground(WindowColor(row))
			default:
				return cellStyle
			}
		})
	return t.Render()
}
