package strategy

import "github.com/bnema/tessellate/internal/domain/entity"

// NameLine is the registry name of Line.
const NameLine = "line"

// Line places every window side by side along one direction with equal weight.
type Line struct {
	Direction entity.Direction
	OuterGaps entity.Edges
	InnerGaps int
	Reversed  bool
}

// Name implements Strategy.
func (Line) Name() string { return NameLine }

// Layout implements Strategy.
func (l Line) Layout(windowCount int) *entity.LayoutNode {
	gaps := rootGaps(l.OuterGaps, l.InnerGaps)
	if root, ok := trivial(windowCount, gaps, NameLine); ok {
		return root
	}
	return entity.NewContainer(l.Direction, lineLeaves(windowCount, l.Reversed)...).
		WithGaps(gaps).
		WithLabel(NameLine)
}
