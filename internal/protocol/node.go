package protocol

import (
	"math"
	"slices"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// MaxDepth bounds how deeply a received tree may nest.
const MaxDepth = 256

// Node is the wire form of entity.LayoutNode.
type Node struct {
	Label              string        `json:"label,omitempty"`
	TraversalIndex     int           `json:"traversal_index"`
	TraversalOverrides map[int][]int `json:"traversal_overrides,omitempty"`
	Style              Style         `json:"style"`
	Children           []*Node       `json:"children,omitempty"`
}

// Style holds the sizing fields of a node.
type Style struct {
	// SizeProportion is the share of the parent's extent. Missing or zero
	// means 1.
	SizeProportion float64 `json:"size_proportion,omitempty" jsonschema:"minimum=0"`
	FlexDir        string  `json:"flex_dir,omitempty" jsonschema:"enum=row,enum=column"`
	Gaps           Gaps    `json:"gaps"`
}

// Gaps is the wire form of entity.Gaps.
type Gaps struct {
	Left   int `json:"left" jsonschema:"minimum=0"`
	Right  int `json:"right" jsonschema:"minimum=0"`
	Top    int `json:"top" jsonschema:"minimum=0"`
	Bottom int `json:"bottom" jsonschema:"minimum=0"`
	Inner  int `json:"inner" jsonschema:"minimum=0"`
}

// NodeFromEntity converts a domain tree for the wire. A nil tree yields nil.
func NodeFromEntity(n *entity.LayoutNode) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Label:          n.Label,
		TraversalIndex: n.TraversalIndex,
		Style: Style{
			SizeProportion: n.SizeProportion,
			FlexDir:        string(n.Direction),
			Gaps: Gaps{
				Left:   n.Gaps.Outer.Left,
				Right:  n.Gaps.Outer.Right,
				Top:    n.Gaps.Outer.Top,
				Bottom: n.Gaps.Outer.Bottom,
				Inner:  n.Gaps.Inner,
			},
		},
	}
	if len(n.TraversalOverrides) > 0 {
		out.TraversalOverrides = make(map[int][]int, len(n.TraversalOverrides))
		for k, path := range n.TraversalOverrides {
			out.TraversalOverrides[k] = slices.Clone(path)
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, NodeFromEntity(c))
	}
	return out
}

// ToEntity validates the tree and converts it to the domain type.
// Failures wrap entity.ErrMalformedMessage.
func (n *Node) ToEntity() (*entity.LayoutNode, error) {
	return n.toEntity(1)
}

func (n *Node) toEntity(depth int) (*entity.LayoutNode, error) {
	if n == nil {
		return nil, malformed("null node at depth %d", depth)
	}
	if depth > MaxDepth {
		return nil, malformed("tree deeper than %d", MaxDepth)
	}

	dir, err := entity.ParseDirection(n.Style.FlexDir)
	if err != nil {
		return nil, malformed("node %q: %v", n.Label, err)
	}

	p := n.Style.SizeProportion
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, malformed("node %q: invalid size_proportion %v", n.Label, p)
	}
	if p == 0 {
		p = entity.DefaultProportion
	}

	gaps := entity.Gaps{
		Outer: entity.Edges{
			Top:    n.Style.Gaps.Top,
			Right:  n.Style.Gaps.Right,
			Bottom: n.Style.Gaps.Bottom,
			Left:   n.Style.Gaps.Left,
		},
		Inner: n.Style.Gaps.Inner,
	}
	if err := gaps.Validate(); err != nil {
		return nil, malformed("node %q: %v", n.Label, err)
	}

	out := &entity.LayoutNode{
		Label:          n.Label,
		TraversalIndex: n.TraversalIndex,
		Direction:      dir,
		Gaps:           gaps,
		SizeProportion: p,
	}
	if len(n.TraversalOverrides) > 0 {
		out.TraversalOverrides = make(map[int][]int, len(n.TraversalOverrides))
		for k, path := range n.TraversalOverrides {
			out.TraversalOverrides[k] = slices.Clone(path)
		}
	}
	if len(n.Children) > 0 {
		out.Children = make([]*entity.LayoutNode, 0, len(n.Children))
		for _, c := range n.Children {
			child, err := c.toEntity(depth + 1)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, child)
		}
	}
	return out, nil
}
