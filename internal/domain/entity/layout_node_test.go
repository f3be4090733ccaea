package entity_test

import (
	"testing"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutNode_Defaults(t *testing.T) {
	leaf := entity.NewLeaf()
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, entity.DirectionRow, leaf.Direction)
	assert.Equal(t, entity.DefaultProportion, leaf.SizeProportion)

	container := entity.NewContainer("", entity.NewLeaf())
	assert.Equal(t, entity.DirectionRow, container.Direction)
	assert.False(t, container.IsLeaf())

	assert.Equal(t, entity.DefaultProportion, entity.NewLeaf().WithProportion(-3).SizeProportion)
}

func TestLayoutNode_LeafCountAndDepth(t *testing.T) {
	tree := entity.NewContainer(entity.DirectionRow,
		entity.NewLeaf(),
		entity.NewContainer(entity.DirectionColumn,
			entity.NewLeaf(),
			entity.NewLeaf(),
		),
	)

	assert.Equal(t, 3, tree.LeafCount())
	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, 1, entity.EmptyTree().LeafCount())
}

func TestLayoutNode_TraversalOrderIsStable(t *testing.T) {
	tree := entity.NewContainer(entity.DirectionRow,
		entity.NewLeaf().WithTraversalIndex(1),
		entity.NewLeaf().WithTraversalIndex(0),
		entity.NewLeaf().WithTraversalIndex(1),
		entity.NewLeaf(),
	)

	assert.Equal(t, []int{1, 3, 0, 2}, tree.TraversalOrder())
}

func TestLayoutNode_WithOverrideCopiesPath(t *testing.T) {
	path := []int{1, 0}
	node := entity.NewContainer(entity.DirectionRow).WithOverride(2, path...)
	path[0] = 9

	require.Contains(t, node.TraversalOverrides, 2)
	assert.Equal(t, []int{1, 0}, node.TraversalOverrides[2])
}

func TestParseDirection(t *testing.T) {
	dir, err := entity.ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionRow, dir)

	dir, err = entity.ParseDirection("column")
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionColumn, dir)
	assert.Equal(t, entity.AxisHorizontal, dir.SplitAxis())
	assert.Equal(t, entity.DirectionRow, dir.Perpendicular())

	_, err = entity.ParseDirection("diagonal")
	assert.Error(t, err)
}
