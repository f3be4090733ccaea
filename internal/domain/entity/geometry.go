// Package entity defines the domain types of the layout core.
package entity

// Axis selects which coordinate a split cuts along.
type Axis int

const (
	AxisVertical   Axis = iota // Left/right split at an x coordinate
	AxisHorizontal             // Top/bottom split at a y coordinate
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Rect is an axis-aligned rectangle in output pixels.
// X and Y are the top-left corner. Width and Height are never negative
// for rectangles produced by this package.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect creates a Rect, clamping negative extents to zero.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: max(0, width), Height: max(0, height)}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Extent returns the size along the axis a split of that axis cuts.
func (r Rect) Extent(axis Axis) int {
	if axis == AxisHorizontal {
		return r.Height
	}
	return r.Width
}

// Start returns the leading coordinate along the axis.
func (r Rect) Start(axis Axis) int {
	if axis == AxisHorizontal {
		return r.Y
	}
	return r.X
}

// Inset shrinks the rectangle by the given edges. The result is clamped so
// that it never has negative extent and never leaves the original bounds.
func (r Rect) Inset(e Edges) Rect {
	x, width := insetSpan(r.X, r.Width, e.Left, e.Right)
	y, height := insetSpan(r.Y, r.Height, e.Top, e.Bottom)
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func insetSpan(start, size, lead, trail int) (int, int) {
	lead = max(0, lead)
	trail = max(0, trail)
	if lead+trail >= size {
		return start + min(lead, size), 0
	}
	return start + lead, size - lead - trail
}

// Split divides the rectangle at coordinate along axis, reserving gap pixels
// between the halves. The first half loses gap/2 on its trailing edge and the
// second half loses the rest on its leading edge, so both halves plus the gap
// reconstruct the original extent. The perpendicular extent is untouched.
//
// ok is false when either half has no extent left. An empty second half is
// returned as a zero-size rectangle at the trailing edge.
func (r Rect) Split(axis Axis, coordinate, gap int) (first, second Rect, ok bool) {
	gap = max(0, gap)
	lead := gap / 2
	trail := gap - lead

	start := r.Start(axis)
	end := start + r.Extent(axis)
	c := min(max(coordinate, start), end)
	firstEnd := max(start, c-lead)
	secondStart := min(end, c+trail)

	first, second = r, r
	switch axis {
	case AxisHorizontal:
		first.Height = firstEnd - start
		second.Y = secondStart
		second.Height = end - secondStart
	default:
		first.Width = firstEnd - start
		second.X = secondStart
		second.Width = end - secondStart
	}
	return first, second, first.Extent(axis) > 0 && second.Extent(axis) > 0
}

// Intersect returns the intersection of two rectangles, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Intersects returns true if the two rectangles overlap.
// Touching edges do not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// ContainsRect returns true if other lies fully inside r.
// Empty rectangles are contained when their origin is within the bounds.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}
