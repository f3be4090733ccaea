package resolver

import (
	"math"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// boundaries returns k+1 offsets into available space for k weights.
//
// Offset i is round(available * prefix_i / total) with ties away from zero,
// computed independently for each boundary from the exact prefix sum. The
// first offset is 0 and the last is exactly available, so rounding never
// accumulates into a sliver or an overlap. Non-positive weights count as the
// default proportion.
func boundaries(available int, weights []float64) []int {
	k := len(weights)
	out := make([]int, k+1)
	if k == 0 {
		return out
	}

	total := 0.0
	for _, w := range weights {
		total += weight(w)
	}

	prefix := 0.0
	for i := 0; i < k-1; i++ {
		prefix += weight(weights[i])
		b := int(math.Round(float64(available) * prefix / total))
		out[i+1] = min(max(b, out[i]), available)
	}
	out[k] = available
	return out
}

func weight(w float64) float64 {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return entity.DefaultProportion
	}
	return w
}

// distribute divides rect among len(weights) children along axis with gap
// pixels between neighbours. Every cut goes through Rect.Split. It returns the
// child rectangles in order and the number of degenerate splits; children
// past a degenerate split get zero-size rectangles at the trailing edge.
func distribute(rect entity.Rect, axis entity.Axis, gap int, weights []float64) ([]entity.Rect, int) {
	k := len(weights)
	if k == 0 {
		return nil, 0
	}
	gap = max(0, gap)

	start := rect.Start(axis)
	available := max(0, rect.Extent(axis)-gap*(k-1))
	bounds := boundaries(available, weights)

	rects := make([]entity.Rect, k)
	remaining := rect
	degenerate := 0
	for j := 0; j < k-1; j++ {
		cut := start + bounds[j+1] + j*gap + gap/2
		first, second, ok := remaining.Split(axis, cut, gap)
		if !ok {
			degenerate++
		}
		rects[j] = first
		remaining = second
	}
	rects[k-1] = remaining
	return rects, degenerate
}
