package strategy

import "github.com/bnema/tessellate/internal/domain/entity"

const (
	// NameDwindle is the registry name of Dwindle.
	NameDwindle = "dwindle"
	// NameSpiral is the registry name of Spiral.
	NameSpiral = "spiral"
)

// Dwindle peels one window off the remaining area at every level, alternating
// between left/right and top/bottom splits, converging toward the bottom-right
// corner.
type Dwindle struct {
	OuterGaps    entity.Edges
	InnerGaps    int
	SplitFactors []float64
}

// Name implements Strategy.
func (Dwindle) Name() string { return NameDwindle }

// Layout implements Strategy.
func (d Dwindle) Layout(windowCount int) *entity.LayoutNode {
	return bisect(NameDwindle, windowCount, d.OuterGaps, d.InnerGaps, d.SplitFactors, false)
}

// Spiral has the structure of Dwindle but every other pair of levels places
// the remainder before the peeled window, so the windows wind inward.
type Spiral struct {
	OuterGaps    entity.Edges
	InnerGaps    int
	SplitFactors []float64
}

// Name implements Strategy.
func (Spiral) Name() string { return NameSpiral }

// Layout implements Strategy.
func (s Spiral) Layout(windowCount int) *entity.LayoutNode {
	return bisect(NameSpiral, windowCount, s.OuterGaps, s.InnerGaps, s.SplitFactors, true)
}

func bisect(name string, windowCount int, outer entity.Edges, inner int, factors []float64, spiral bool) *entity.LayoutNode {
	gaps := rootGaps(outer, inner)
	if root, ok := trivial(windowCount, gaps, name); ok {
		return root
	}

	factorAt := func(level int) float64 {
		if level < len(factors) {
			return clampFactor(factors[level])
		}
		return defaultFactor
	}

	// Built from the innermost level outward.
	rest := entity.NewLeaf()
	for level := windowCount - 2; level >= 0; level-- {
		dir := entity.DirectionRow
		if level%2 == 1 {
			dir = entity.DirectionColumn
		}
		f := factorAt(level)
		leaf := entity.NewLeaf().WithProportion(f)
		rest.WithProportion(1 - f)

		node := entity.NewContainer(dir).WithGaps(entity.InnerOnly(inner))
		if spiral && level%4 >= 2 {
			leaf.WithTraversalIndex(0)
			rest.WithTraversalIndex(1)
			node.Append(rest, leaf)
		} else {
			node.Append(leaf, rest)
		}
		rest = node
	}

	return rest.WithGaps(gaps).WithProportion(entity.DefaultProportion).WithLabel(name)
}
