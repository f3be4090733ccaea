package strategy

import (
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// NameMasterStack is the registry name of MasterStack.
const NameMasterStack = "master_stack"

// Side is the edge of the output a group is anchored to.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// ParseSide converts a configuration value into a Side. Empty means left.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case "", SideLeft:
		return SideLeft, nil
	case SideRight, SideTop, SideBottom:
		return Side(s), nil
	default:
		return "", fmt.Errorf("invalid side %q (must be left, right, top or bottom)", s)
	}
}

// direction returns the direction of a split that puts something on this side.
func (s Side) direction() entity.Direction {
	if s == SideTop || s == SideBottom {
		return entity.DirectionColumn
	}
	return entity.DirectionRow
}

// leading reports whether the side comes first in visual order.
func (s Side) leading() bool {
	return s != SideRight && s != SideBottom
}

// MasterStack splits the output into a master group and a stack group.
// Each group is a line perpendicular to the master/stack split. The master
// group is always handed windows first, whichever side it sits on.
type MasterStack struct {
	MasterFactor float64
	MasterSide   Side
	MasterCount  int
	OuterGaps    entity.Edges
	InnerGaps    int
	Reversed     bool
}

// Name implements Strategy.
func (MasterStack) Name() string { return NameMasterStack }

// Layout implements Strategy.
func (m MasterStack) Layout(windowCount int) *entity.LayoutNode {
	gaps := rootGaps(m.OuterGaps, m.InnerGaps)
	if root, ok := trivial(windowCount, gaps, NameMasterStack); ok {
		return root
	}

	side := m.MasterSide
	if side == "" {
		side = SideLeft
	}
	splitDir := side.direction()
	groupDir := splitDir.Perpendicular()

	masters := min(max(m.MasterCount, 0), windowCount)
	stacked := windowCount - masters

	root := entity.NewContainer(splitDir).WithGaps(gaps).WithLabel(NameMasterStack)

	group := func(label string, count, traversal int, proportion float64) *entity.LayoutNode {
		return entity.NewContainer(groupDir, lineLeaves(count, m.Reversed)...).
			WithGaps(entity.InnerOnly(m.InnerGaps)).
			WithLabel(label).
			WithTraversalIndex(traversal).
			WithProportion(proportion)
	}

	switch {
	case masters == 0:
		root.Append(group("stack", stacked, 1, 1))
	case stacked == 0:
		root.Append(group("master", masters, 0, 1))
	default:
		factor := clampFactor(m.MasterFactor)
		master := group("master", masters, 0, factor)
		stack := group("stack", stacked, 1, 1-factor)
		if side.leading() {
			root.Append(master, stack)
		} else {
			root.Append(stack, master)
		}
	}
	return root
}
