package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tessellate/internal/domain/entity"
)

var windowColors = []lipgloss.Color{
	"#4ade80", "#60a5fa", "#f472b6", "#facc15",
	"#a78bfa", "#fb923c", "#2dd4bf", "#f87171",
}

// WindowColor returns the display color of window i.
func WindowColor(i int) lipgloss.Color {
	if i < 0 {
		i = -i
	}
	return windowColors[i%len(windowColors)]
}

// Cell is one character of a projected layout map.
type Cell struct {
	// Window is the index of the window covering the cell, -1 for none.
	Window int
	// Edge is set when the cell sits on the border of its window.
	Edge bool
}

// ProjectGrid scales rects from area onto a cols x rows character grid.
// Later windows are drawn over earlier ones.
func ProjectGrid(area entity.Rect, rects []entity.Rect, cols, rows int) [][]Cell {
	grid := make([][]Cell, max(rows, 0))
	for y := range grid {
		grid[y] = make([]Cell, max(cols, 0))
		for x := range grid[y] {
			grid[y][x].Window = -1
		}
	}
	if area.IsEmpty() || cols <= 0 || rows <= 0 {
		return grid
	}

	for i, r := range rects {
		if r.IsEmpty() {
			continue
		}
		x0, x1 := scaleSpan(r.X-area.X, r.Width, area.Width, cols)
		y0, y1 := scaleSpan(r.Y-area.Y, r.Height, area.Height, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = Cell{
					Window: i,
					Edge:   y == y0 || y == y1-1 || x == x0 || x == x1-1,
				}
			}
		}
	}
	return grid
}

// scaleSpan maps [start, start+size) of total onto [0, cells). A visible
// span always keeps at least one cell.
func scaleSpan(start, size, total, cells int) (int, int) {
	lo := start * cells / total
	hi := (start + size) * cells / total
	lo = min(max(lo, 0), cells-1)
	hi = min(max(hi, lo+1), cells)
	return lo, hi
}

// RenderLayoutMap draws rects as colored boxes labelled with their window
// number.
func RenderLayoutMap(theme *Theme, area entity.Rect, rects []entity.Rect, cols, rows int) string {
	if len(rects) == 0 || area.IsEmpty() {
		return theme.Box.Render(theme.Subtle.Render("empty"))
	}

	grid := ProjectGrid(area, rects, cols, rows)
	labels := labelPositions(grid, len(rects))

	var b strings.Builder
	for y, line := range grid {
		for x := 0; x < len(line); x++ {
			cell := line[x]
			if cell.Window < 0 {
				b.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(WindowColor(cell.Window))
			if pos, ok := labels[cell.Window]; ok && pos[0] == y && pos[1] == x {
				label := strconv.Itoa(cell.Window + 1)
				b.WriteString(style.Bold(true).Render(label))
				x += len(label) - 1
				continue
			}
			b.WriteString(style.Render(edgeRune(grid, x, y)))
		}
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// labelPositions finds the center interior cell of each window that has room
// for its label.
func labelPositions(grid [][]Cell, count int) map[int][2]int {
	type bounds struct{ x0, y0, x1, y1 int }
	seen := make(map[int]*bounds, count)
	for y, line := range grid {
		for x, cell := range line {
			if cell.Window < 0 {
				continue
			}
			b, ok := seen[cell.Window]
			if !ok {
				seen[cell.Window] = &bounds{x, y, x, y}
				continue
			}
			b.x0, b.y0 = min(b.x0, x), min(b.y0, y)
			b.x1, b.y1 = max(b.x1, x), max(b.y1, y)
		}
	}

	pos := make(map[int][2]int, len(seen))
	for w, b := range seen {
		label := len(strconv.Itoa(w + 1))
		cx, cy := (b.x0+b.x1)/2, (b.y0+b.y1)/2
		if cx+label-1 > b.x1 {
			continue
		}
		fits := true
		for i := 0; i < label; i++ {
			if grid[cy][cx+i].Window != w {
				fits = false
				break
			}
		}
		if fits {
			pos[w] = [2]int{cy, cx}
		}
	}
	return pos
}

func edgeRune(grid [][]Cell, x, y int) string {
	cell := grid[y][x]
	if !cell.Edge {
		return " "
	}
	same := func(dx, dy int) bool {
		ny, nx := y+dy, x+dx
		if ny < 0 || ny >= len(grid) || nx < 0 || nx >= len(grid[ny]) {
			return false
		}
		n := grid[ny][nx]
		return n.Window == cell.Window && n.Edge
	}
	up, down, left, right := same(0, -1), same(0, 1), same(-1, 0), same(1, 0)
	switch {
	case down && right && !up && !left:
		return "┌"
	case down && left && !up && !right:
		return "┐"
	case up && right && !down && !left:
		return "└"
	case up && left && !down && !right:
		return "┘"
	case (up || down) && !left && !right:
		return "│"
	case left || right:
		return "─"
	default:
		return "■"
	}
}
