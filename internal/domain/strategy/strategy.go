// Package strategy provides the builtin tiling policies. Each strategy maps a
// window count to a fresh layout tree; only Cycle carries state.
package strategy

import "github.com/bnema/tessellate/internal/domain/entity"

// Strategy builds a layout tree for a number of windows.
type Strategy interface {
	Name() string
	Layout(windowCount int) *entity.LayoutNode
}

const (
	minFactor     = 0.1
	maxFactor     = 0.9
	defaultFactor = 0.5
)

// clampFactor bounds a split factor. Zero means unset and yields the default.
func clampFactor(f float64) float64 {
	if f == 0 {
		return defaultFactor
	}
	return min(max(f, minFactor), maxFactor)
}

// rootGaps is the gap policy of a strategy root: outer edges plus inner spacing.
// Nested containers only carry the inner part so the outer edges apply once.
func rootGaps(outer entity.Edges, inner int) entity.Gaps {
	return entity.Gaps{Outer: outer, Inner: inner}
}

// trivial handles the shared edge cases. Zero windows give a childless root,
// one window gives a root holding a single leaf.
func trivial(windowCount int, gaps entity.Gaps, label string) (*entity.LayoutNode, bool) {
	switch {
	case windowCount <= 0:
		return entity.EmptyTree().WithLabel(label), true
	case windowCount == 1:
		return entity.NewContainer(entity.DirectionRow, entity.NewLeaf()).
			WithGaps(gaps).
			WithLabel(label), true
	default:
		return nil, false
	}
}

// lineLeaves creates count equal leaves. Reversed hands the last leaf out first
// without touching their visual order.
func lineLeaves(count int, reversed bool) []*entity.LayoutNode {
	leaves := make([]*entity.LayoutNode, count)
	for i := range leaves {
		idx := i
		if reversed {
			idx = count - 1 - i
		}
		leaves[i] = entity.NewLeaf().WithTraversalIndex(idx)
	}
	return leaves
}
