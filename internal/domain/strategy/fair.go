package strategy

import (
	"math"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// NameFair is the registry name of Fair.
const NameFair = "fair"

// Fair arranges windows in a near-square grid. Lines are stacked along
// Direction and each line lays its windows out perpendicular to it.
type Fair struct {
	Direction entity.Direction
	OuterGaps entity.Edges
	InnerGaps int
}

// Name implements Strategy.
func (Fair) Name() string { return NameFair }

// Layout implements Strategy.
func (f Fair) Layout(windowCount int) *entity.LayoutNode {
	gaps := rootGaps(f.OuterGaps, f.InnerGaps)
	if root, ok := trivial(windowCount, gaps, NameFair); ok {
		return root
	}

	root := entity.NewContainer(f.Direction).WithGaps(gaps).WithLabel(NameFair)
	lineDir := root.Direction.Perpendicular()
	for _, count := range FairLines(windowCount) {
		root.Append(entity.NewContainer(lineDir, lineLeaves(count, false)...).
			WithGaps(entity.InnerOnly(f.InnerGaps)))
	}
	return root
}

// FairLines returns how many windows each line of a fair layout holds.
// round(sqrt(n)) lines of ceil(n/lines) windows, the last line taking the
// remainder. Two windows always make two lines of one.
func FairLines(windowCount int) []int {
	if windowCount <= 0 {
		return nil
	}
	if windowCount == 2 {
		return []int{1, 1}
	}
	lines := max(1, int(math.Round(math.Sqrt(float64(windowCount)))))
	perLine := (windowCount + lines - 1) / lines

	counts := make([]int, 0, lines)
	for left := windowCount; left > 0; left -= perLine {
		counts = append(counts, min(perLine, left))
	}
	return counts
}
