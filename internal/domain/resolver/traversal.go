package resolver

import (
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// assign hands leaves out to windows.
//
// A window first follows the traversal overrides it has on the root. Each
// path indexes children in traversal order; when a path ends on a node that
// has its own override for the window, that one is followed too. The node
// reached this way is the window's anchor.
//
// Windows anchored on a leaf claim it before anyone else. Every other window,
// in window order, takes the first free leaf under its anchor in traversal
// order.
func assign(root *frame, windowCount int) ([]entity.Rect, error) {
	rects := make([]entity.Rect, windowCount)
	anchors := make([]*frame, windowCount)

	for w := range windowCount {
		anchor, err := anchorFor(root, w)
		if err != nil {
			return nil, err
		}
		anchors[w] = anchor
		if !anchor.isLeaf() {
			continue
		}
		if anchor.taken {
			return nil, fmt.Errorf("%w: window %d overrides onto a leaf already claimed",
				entity.ErrStrategyContract, w)
		}
		anchor.taken = true
		rects[w] = anchor.rect
	}

	for w := range windowCount {
		if anchors[w].isLeaf() {
			continue
		}
		leaf := firstFree(anchors[w])
		if leaf == nil {
			return nil, fmt.Errorf("%w: no free leaf left for window %d",
				entity.ErrStrategyContract, w)
		}
		leaf.taken = true
		rects[w] = leaf.rect
	}
	return rects, nil
}

func anchorFor(root *frame, window int) (*frame, error) {
	current := root
	for {
		path := current.node.TraversalOverrides[window]
		if len(path) == 0 {
			return current, nil
		}
		for depth, idx := range path {
			if idx < 0 || idx >= len(current.children) {
				return nil, fmt.Errorf("%w: override for window %d has invalid index %d at depth %d",
					entity.ErrStrategyContract, window, idx, depth)
			}
			current = current.children[idx]
		}
	}
}

func firstFree(f *frame) *frame {
	if f.isLeaf() {
		if f.taken {
			return nil
		}
		return f
	}
	for _, child := range f.children {
		if leaf := firstFree(child); leaf != nil {
			return leaf
		}
	}
	return nil
}
