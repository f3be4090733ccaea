// Package resolver turns a layout tree into one rectangle per window.
package resolver

import (
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// Result is the outcome of resolving a tree.
type Result struct {
	// Rects holds one rectangle per window, index i for window i.
	Rects []entity.Rect
	// DegenerateSplits counts splits that left no room for their second
	// half. Those children were given zero-size rectangles.
	DegenerateSplits int
}

// Resolve lays root out inside area and returns the rectangle of each of the
// windowCount windows in window order.
func Resolve(root *entity.LayoutNode, area entity.Rect, windowCount int) ([]entity.Rect, error) {
	res, err := Compute(root, area, windowCount)
	if err != nil {
		return nil, err
	}
	return res.Rects, nil
}

// Compute is Resolve with split diagnostics.
//
// Zero windows resolve to an empty list whatever the tree. Otherwise the tree
// must have exactly windowCount leaves and every traversal override must lead
// to an existing child, or ErrStrategyContract is returned.
func Compute(root *entity.LayoutNode, area entity.Rect, windowCount int) (Result, error) {
	if windowCount <= 0 {
		return Result{Rects: []entity.Rect{}}, nil
	}
	if root == nil {
		return Result{}, fmt.Errorf("%w: nil tree for %d windows", entity.ErrStrategyContract, windowCount)
	}
	if leaves := root.LeafCount(); leaves != windowCount {
		return Result{}, fmt.Errorf("%w: tree has %d leaves for %d windows",
			entity.ErrStrategyContract, leaves, windowCount)
	}

	var degenerate int
	top := place(root, area, &degenerate)

	rects, err := assign(top, windowCount)
	if err != nil {
		return Result{}, err
	}
	return Result{Rects: rects, DegenerateSplits: degenerate}, nil
}

// frame is a node with its resolved rectangle. Children are kept in
// traversal order.
type frame struct {
	node     *entity.LayoutNode
	rect     entity.Rect
	children []*frame
	taken    bool
}

func (f *frame) isLeaf() bool {
	return len(f.children) == 0
}

// place resolves the geometry of node and its subtree inside rect.
// The node's outer gaps shrink its own rectangle first; a leaf keeps that
// shrunk rectangle.
func place(node *entity.LayoutNode, rect entity.Rect, degenerate *int) *frame {
	inner := rect.Inset(node.Gaps.Outer)
	f := &frame{node: node, rect: inner}
	if node.IsLeaf() {
		return f
	}

	weights := make([]float64, len(node.Children))
	for i, child := range node.Children {
		weights[i] = child.SizeProportion
	}
	slots, cut := distribute(inner, node.Direction.SplitAxis(), node.Gaps.Inner, weights)
	*degenerate += cut

	placed := make([]*frame, len(node.Children))
	for i, child := range node.Children {
		placed[i] = place(child, slots[i], degenerate)
	}

	order := node.TraversalOrder()
	f.children = make([]*frame, len(order))
	for i, pos := range order {
		f.children[i] = placed[pos]
	}
	return f
}
