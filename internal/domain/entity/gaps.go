package entity

import "fmt"

// Edges holds a value for each side of a rectangle.
type Edges struct {
	Top    int `json:"top" mapstructure:"top"`
	Right  int `json:"right" mapstructure:"right"`
	Bottom int `json:"bottom" mapstructure:"bottom"`
	Left   int `json:"left" mapstructure:"left"`
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() int {
	return e.Top + e.Bottom
}

// IsZero returns true if all edge values are zero.
func (e Edges) IsZero() bool {
	return e == Edges{}
}

// Gaps describes the spacing a node reserves.
// Outer shrinks the node's own area once on each side; Inner is reserved
// between each pair of adjacent children.
type Gaps struct {
	Outer Edges
	Inner int
}

// UniformGaps is the scalar form: n pixels outside and n between children.
func UniformGaps(n int) Gaps {
	return Gaps{Outer: EdgeAll(n), Inner: n}
}

// InnerOnly returns gaps that only separate children.
func InnerOnly(n int) Gaps {
	return Gaps{Inner: n}
}

// IsZero reports whether the gaps reserve no space at all.
func (g Gaps) IsZero() bool {
	return g.Inner == 0 && g.Outer.IsZero()
}

// Validate rejects negative gap values.
func (g Gaps) Validate() error {
	if g.Inner < 0 || g.Outer.Top < 0 || g.Outer.Right < 0 || g.Outer.Bottom < 0 || g.Outer.Left < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGaps, g)
	}
	return nil
}
