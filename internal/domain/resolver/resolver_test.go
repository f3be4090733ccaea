package resolver_test

import (
	"testing"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x, y, w, h int) entity.Rect {
	return entity.Rect{X: x, Y: y, Width: w, Height: h}
}

func row(children ...*entity.LayoutNode) *entity.LayoutNode {
	return entity.NewContainer(entity.DirectionRow, children...)
}

func column(children ...*entity.LayoutNode) *entity.LayoutNode {
	return entity.NewContainer(entity.DirectionColumn, children...)
}

func leaf() *entity.LayoutNode {
	return entity.NewLeaf()
}

func TestResolve_ZeroWindows(t *testing.T) {
	rects, err := resolver.Resolve(entity.EmptyTree(), rect(0, 0, 100, 100), 0)
	require.NoError(t, err)
	assert.NotNil(t, rects)
	assert.Empty(t, rects)
}

func TestResolve_LeafCountMismatch(t *testing.T) {
	_, err := resolver.Resolve(row(leaf(), leaf()), rect(0, 0, 100, 100), 3)
	assert.ErrorIs(t, err, entity.ErrStrategyContract)

	_, err = resolver.Resolve(nil, rect(0, 0, 100, 100), 1)
	assert.ErrorIs(t, err, entity.ErrStrategyContract)
}

func TestResolve_Proportions(t *testing.T) {
	tree := row(leaf().WithProportion(1), leaf().WithProportion(3))
	rects, err := resolver.Resolve(tree, rect(0, 0, 400, 50), 2)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(0, 0, 100, 50), rect(100, 0, 300, 50)}, rects)
}

func TestResolve_NestedGaps(t *testing.T) {
	tree := row(
		leaf(),
		column(leaf(), leaf()).WithGaps(entity.InnerOnly(10)),
	).WithGaps(entity.UniformGaps(10))

	rects, err := resolver.Resolve(tree, rect(0, 0, 210, 120), 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{
		rect(10, 10, 90, 100),
		rect(110, 10, 90, 45),
		rect(110, 65, 90, 45),
	}, rects)
}

func TestResolve_LeafOwnGaps(t *testing.T) {
	tree := row(leaf().WithGaps(entity.Gaps{Outer: entity.EdgeAll(5)}), leaf())
	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 2)
	require.NoError(t, err)
	assert.Equal(t, rect(5, 5, 90, 90), rects[0])
	assert.Equal(t, rect(100, 0, 100, 100), rects[1])
}

func TestResolve_TraversalIndexOrdersSiblings(t *testing.T) {
	tree := row(leaf().WithTraversalIndex(1), leaf().WithTraversalIndex(0))
	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 2)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(100, 0, 100, 100), rect(0, 0, 100, 100)}, rects)
}

func TestResolve_OverrideReservesLeaf(t *testing.T) {
	tree := row(leaf(), leaf(), leaf()).WithOverride(0, 2)
	rects, err := resolver.Resolve(tree, rect(0, 0, 300, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{
		rect(200, 0, 100, 100),
		rect(0, 0, 100, 100),
		rect(100, 0, 100, 100),
	}, rects)
}

func TestResolve_OverrideReservesBeforeEarlierWindows(t *testing.T) {
	// Window 2 claims the first leaf even though windows 0 and 1 come first.
	tree := row(leaf(), leaf(), leaf()).WithOverride(2, 0)
	rects, err := resolver.Resolve(tree, rect(0, 0, 300, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{
		rect(100, 0, 100, 100),
		rect(200, 0, 100, 100),
		rect(0, 0, 100, 100),
	}, rects)
}

func TestResolve_OverrideFollowsTraversalOrder(t *testing.T) {
	tree := row(
		leaf().WithTraversalIndex(1),
		leaf().WithTraversalIndex(0),
	).WithOverride(1, 0)

	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 2)
	require.NoError(t, err)
	// Path index 0 is the second child, the first in traversal order.
	assert.Equal(t, rect(100, 0, 100, 100), rects[1])
	assert.Equal(t, rect(0, 0, 100, 100), rects[0])
}

func TestResolve_PartialPathAnchorsSubtree(t *testing.T) {
	tree := row(
		leaf(),
		column(leaf(), leaf()),
	).WithOverride(0, 1)

	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{
		rect(100, 0, 100, 50),
		rect(0, 0, 100, 100),
		rect(100, 50, 100, 50),
	}, rects)
}

func TestResolve_ChainedOverrides(t *testing.T) {
	inner := column(leaf(), leaf()).WithOverride(0, 1)
	tree := row(inner, leaf()).WithOverride(0, 0)

	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 3)
	require.NoError(t, err)
	assert.Equal(t, rect(0, 50, 100, 50), rects[0])
	assert.Equal(t, rect(0, 0, 100, 50), rects[1])
	assert.Equal(t, rect(100, 0, 100, 100), rects[2])
}

func TestResolve_OverrideOutOfRangeKeyIgnored(t *testing.T) {
	tree := row(leaf(), leaf()).WithOverride(7, 1)
	rects, err := resolver.Resolve(tree, rect(0, 0, 200, 100), 2)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(0, 0, 100, 100), rect(100, 0, 100, 100)}, rects)
}

func TestResolve_OverrideContractViolations(t *testing.T) {
	tests := []struct {
		name string
		tree *entity.LayoutNode
	}{
		{"index past children", row(leaf(), leaf()).WithOverride(0, 5)},
		{"negative index", row(leaf(), leaf()).WithOverride(1, -1)},
		{"path through a leaf", row(leaf(), leaf()).WithOverride(0, 0, 0)},
		{"two windows on one leaf", row(leaf(), leaf()).WithOverride(0, 1).WithOverride(1, 1)},
		{
			"anchor subtree exhausted",
			row(column(leaf()), leaf()).WithOverride(0, 0, 0).WithOverride(1, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.tree, rect(0, 0, 200, 100), 2)
			assert.ErrorIs(t, err, entity.ErrStrategyContract)
		})
	}
}

func TestCompute_DegenerateSplitsAreRecovered(t *testing.T) {
	tree := row(leaf(), leaf(), leaf()).WithGaps(entity.InnerOnly(60))
	area := rect(0, 0, 100, 40)

	res, err := resolver.Compute(tree, area, 3)
	require.NoError(t, err)
	require.Len(t, res.Rects, 3)
	assert.Positive(t, res.DegenerateSplits)
	for _, r := range res.Rects {
		assert.True(t, area.ContainsRect(r))
		assert.GreaterOrEqual(t, r.Width, 0)
	}
}

func TestCompute_CountsEmptyLeadingChild(t *testing.T) {
	// The first share rounds to zero pixels.
	tree := row(leaf().WithProportion(0.1), leaf().WithProportion(10))

	res, err := resolver.Compute(tree, rect(0, 0, 5, 10), 2)
	require.NoError(t, err)
	assert.Equal(t, []entity.Rect{rect(0, 0, 0, 10), rect(0, 0, 5, 10)}, res.Rects)
	assert.Equal(t, 1, res.DegenerateSplits)
}

func TestResolve_Idempotent(t *testing.T) {
	tree := row(
		column(leaf(), leaf().WithProportion(2), leaf()),
		leaf().WithProportion(0.7),
		column(leaf(), leaf()).WithOverride(0, 1),
	).WithGaps(entity.UniformGaps(3)).WithOverride(4, 2)

	area := rect(13, 7, 1001, 599)
	first, err := resolver.Resolve(tree, area, 6)
	require.NoError(t, err)
	second, err := resolver.Resolve(tree, area, 6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
