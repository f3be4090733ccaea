package resolver

import (
	"testing"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		available int
		weights   []float64
		want      []int
	}{
		{"even", 300, []float64{1, 1, 1}, []int{0, 100, 200, 300}},
		{"tie rounds away from zero", 5, []float64{1, 1}, []int{0, 3, 5}},
		{"thirds", 100, []float64{1, 1, 1}, []int{0, 33, 67, 100}},
		{"weighted", 100, []float64{1, 3}, []int{0, 25, 100}},
		{"zero weight uses default", 100, []float64{0, 1}, []int{0, 50, 100}},
		{"nothing available", 0, []float64{1, 2}, []int{0, 0, 0}},
		{"single", 7, []float64{4}, []int{0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, boundaries(tt.available, tt.weights))
		})
	}
}

func TestDistribute_ReconstructsExtent(t *testing.T) {
	r := entity.Rect{X: 3, Y: 5, Width: 1001, Height: 77}
	for k := 1; k < 12; k++ {
		for _, gap := range []int{0, 1, 4, 7} {
			weights := make([]float64, k)
			for i := range weights {
				weights[i] = float64(i%3) + 0.5
			}
			rects, degenerate := distribute(r, entity.AxisVertical, gap, weights)
			assert.Zero(t, degenerate)

			total := gap * (k - 1)
			for i, got := range rects {
				total += got.Width
				assert.Equal(t, r.Height, got.Height)
				if i > 0 {
					assert.Equal(t, rects[i-1].Right()+gap, got.X, "k=%d gap=%d child %d", k, gap, i)
				}
			}
			assert.Equal(t, r.Width, total, "k=%d gap=%d", k, gap)
			assert.Equal(t, r.X, rects[0].X)
			assert.Equal(t, r.Right(), rects[k-1].Right())
		}
	}
}

func TestDistribute_Horizontal(t *testing.T) {
	rects, _ := distribute(entity.Rect{Width: 40, Height: 101}, entity.AxisHorizontal, 1, []float64{1, 1})
	assert.Equal(t, []entity.Rect{
		{X: 0, Y: 0, Width: 40, Height: 50},
		{X: 0, Y: 51, Width: 40, Height: 50},
	}, rects)
}
