package entity

import (
	"cmp"
	"fmt"
	"slices"
)

// Direction is the axis along which a node distributes its children.
type Direction string

const (
	DirectionRow    Direction = "row"    // Children side by side, left to right
	DirectionColumn Direction = "column" // Children stacked, top to bottom
)

// ParseDirection converts a configuration or wire value into a Direction.
// An empty string yields the default row direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", DirectionRow:
		return DirectionRow, nil
	case DirectionColumn:
		return DirectionColumn, nil
	default:
		return "", fmt.Errorf("invalid direction %q (must be row or column)", s)
	}
}

// SplitAxis returns the axis a split between two children of this direction cuts.
func (d Direction) SplitAxis() Axis {
	if d == DirectionColumn {
		return AxisHorizontal
	}
	return AxisVertical
}

// Perpendicular returns the other direction.
func (d Direction) Perpendicular() Direction {
	if d == DirectionColumn {
		return DirectionRow
	}
	return DirectionColumn
}

// DefaultProportion is the share a node takes when none is given.
const DefaultProportion = 1.0

// LayoutNode is one node of a layout tree. A node without children is a leaf
// and stands for exactly one window slot.
//
// Trees are built fresh for every request by a strategy and discarded once
// resolved. Use NewLeaf and NewContainer so defaults are always filled in.
type LayoutNode struct {
	// Label is informational only.
	Label string

	// TraversalIndex orders this node among its siblings when leaves are
	// handed out to windows. Ties keep structural order.
	TraversalIndex int

	// TraversalOverrides maps a window index to an explicit path of child
	// positions (in traversal order) to follow from this node.
	TraversalOverrides map[int][]int

	Direction      Direction
	Gaps           Gaps
	SizeProportion float64
	Children       []*LayoutNode
}

// NewLeaf creates a leaf node with default proportion.
func NewLeaf() *LayoutNode {
	return &LayoutNode{
		Direction:      DirectionRow,
		SizeProportion: DefaultProportion,
	}
}

// NewContainer creates a node distributing children along dir.
func NewContainer(dir Direction, children ...*LayoutNode) *LayoutNode {
	if dir == "" {
		dir = DirectionRow
	}
	return &LayoutNode{
		Direction:      dir,
		SizeProportion: DefaultProportion,
		Children:       children,
	}
}

// EmptyTree returns the degenerate tree used when there are no windows.
func EmptyTree() *LayoutNode {
	return NewLeaf()
}

// WithLabel sets the label and returns the node.
func (n *LayoutNode) WithLabel(label string) *LayoutNode {
	n.Label = label
	return n
}

// WithProportion sets the size proportion and returns the node.
// Non-positive values fall back to the default proportion.
func (n *LayoutNode) WithProportion(p float64) *LayoutNode {
	if p <= 0 {
		p = DefaultProportion
	}
	n.SizeProportion = p
	return n
}

// WithGaps sets the gaps and returns the node.
func (n *LayoutNode) WithGaps(g Gaps) *LayoutNode {
	n.Gaps = g
	return n
}

// WithTraversalIndex sets the traversal index and returns the node.
func (n *LayoutNode) WithTraversalIndex(i int) *LayoutNode {
	n.TraversalIndex = i
	return n
}

// WithOverride records an explicit traversal path for a window index.
func (n *LayoutNode) WithOverride(window int, path ...int) *LayoutNode {
	if n.TraversalOverrides == nil {
		n.TraversalOverrides = make(map[int][]int)
	}
	n.TraversalOverrides[window] = slices.Clone(path)
	return n
}

// Append adds children and returns the node.
func (n *LayoutNode) Append(children ...*LayoutNode) *LayoutNode {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf returns true if this node has no children.
func (n *LayoutNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk traverses the tree depth-first in structural order calling fn for each
// node. Returns early if fn returns false.
func (n *LayoutNode) Walk(fn func(*LayoutNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// LeafCount returns the number of leaves under this node.
func (n *LayoutNode) LeafCount() int {
	count := 0
	n.Walk(func(node *LayoutNode) bool {
		if node.IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// Depth returns the number of levels in the tree, a lone leaf being 1.
func (n *LayoutNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, child := range n.Children {
		deepest = max(deepest, child.Depth())
	}
	return deepest + 1
}

// TraversalOrder returns the positions of the children sorted by traversal
// index. Equal indices keep their structural order.
func (n *LayoutNode) TraversalOrder() []int {
	order := make([]int, len(n.Children))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(n.Children[a].TraversalIndex, n.Children[b].TraversalIndex)
	})
	return order
}
