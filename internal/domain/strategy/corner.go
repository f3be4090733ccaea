package strategy

import (
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// NameCorner is the registry name of Corner.
const NameCorner = "corner"

// CornerLocation names the corner the first window occupies.
type CornerLocation string

const (
	CornerTopLeft     CornerLocation = "top_left"
	CornerTopRight    CornerLocation = "top_right"
	CornerBottomLeft  CornerLocation = "bottom_left"
	CornerBottomRight CornerLocation = "bottom_right"
)

// ParseCornerLocation converts a configuration value. Empty means top_left.
func ParseCornerLocation(s string) (CornerLocation, error) {
	switch CornerLocation(s) {
	case "", CornerTopLeft:
		return CornerTopLeft, nil
	case CornerTopRight, CornerBottomLeft, CornerBottomRight:
		return CornerLocation(s), nil
	default:
		return "", fmt.Errorf("invalid corner location %q", s)
	}
}

func (c CornerLocation) right() bool  { return c == CornerTopRight || c == CornerBottomRight }
func (c CornerLocation) bottom() bool { return c == CornerBottomLeft || c == CornerBottomRight }

// Corner pins the first window in a corner sized by both factors. A vertical
// stack runs along the full height beside it and a horizontal stack runs
// below or above it. Remaining windows alternate between the two stacks,
// starting with the vertical one.
//
// The tree (for top_left) is:
//
//	row
//	├── column (width factor)
//	│   ├── corner (height factor)
//	│   └── horizontal stack (row)
//	└── vertical stack (column)
//
// Every window gets an explicit traversal override on the root so its slot
// stays put when a window is added or removed.
type Corner struct {
	WidthFactor  float64
	HeightFactor float64
	Location     CornerLocation
	OuterGaps    entity.Edges
	InnerGaps    int
}

// Name implements Strategy.
func (Corner) Name() string { return NameCorner }

// Layout implements Strategy.
func (c Corner) Layout(windowCount int) *entity.LayoutNode {
	gaps := rootGaps(c.OuterGaps, c.InnerGaps)
	if root, ok := trivial(windowCount, gaps, NameCorner); ok {
		return root
	}

	wf := clampFactor(c.WidthFactor)
	hf := clampFactor(c.HeightFactor)
	inner := entity.InnerOnly(c.InnerGaps)

	remaining := windowCount - 1
	vertical := (remaining + 1) / 2
	horizontal := remaining / 2

	corner := entity.NewLeaf().WithLabel("corner").WithProportion(hf)
	side := entity.NewContainer(entity.DirectionColumn).
		WithGaps(inner).
		WithProportion(wf)
	if horizontal > 0 {
		hstack := entity.NewContainer(entity.DirectionRow, lineLeaves(horizontal, false)...).
			WithGaps(inner).
			WithLabel("horizontal_stack").
			WithTraversalIndex(1).
			WithProportion(1 - hf)
		if c.Location.bottom() {
			side.Append(hstack, corner)
		} else {
			side.Append(corner, hstack)
		}
	} else {
		side.Append(corner)
	}

	vstack := entity.NewContainer(entity.DirectionColumn, lineLeaves(vertical, false)...).
		WithGaps(inner).
		WithLabel("vertical_stack").
		WithTraversalIndex(1).
		WithProportion(1 - wf)

	root := entity.NewContainer(entity.DirectionRow).WithGaps(gaps).WithLabel(NameCorner)
	if c.Location.right() {
		root.Append(vstack, side)
	} else {
		root.Append(side, vstack)
	}

	// Paths index children in traversal order: the corner side and the corner
	// leaf always come first, so the paths do not depend on the location.
	root.WithOverride(0, 0, 0)
	for w := 1; w < windowCount; w++ {
		r := w - 1
		if r%2 == 0 {
			root.WithOverride(w, 1, r/2)
		} else {
			root.WithOverride(w, 0, 1, r/2)
		}
	}
	return root
}
