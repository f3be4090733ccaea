package entity

import "slices"

// OutputName identifies an output (a monitor) by its compositor name.
type OutputName string

// TagID identifies a tag. Tags group windows the way workspaces do.
type TagID uint32

// WindowID identifies a window owned by the compositor.
type WindowID string

// RequestID tags a layout request so its response can be matched.
type RequestID uint64

// LayoutNeed is what the compositor knows when an output must be laid out:
// the windows in their externally chosen order, the active tags and the
// usable area of the output.
type LayoutNeed struct {
	Output  OutputName
	Windows []WindowID
	Tags    []TagID
	Area    Rect
}

// WindowCount returns the number of windows to lay out.
func (n LayoutNeed) WindowCount() int {
	return len(n.Windows)
}

// LayoutRequest is the message sent to a producer for one need.
type LayoutRequest struct {
	ID          RequestID
	Output      OutputName
	WindowCount int
	Tags        []TagID
	// Area is only consulted by producers answering with concrete geometry.
	Area Rect
}

// PrimaryTag returns the lowest active tag, which keys per-tag strategy
// state. ok is false when no tag is active.
func (r LayoutRequest) PrimaryTag() (TagID, bool) {
	if len(r.Tags) == 0 {
		return 0, false
	}
	return slices.Min(r.Tags), true
}

// LayoutResponse is the answer to a LayoutRequest. It is either a TreeLayout
// or a GeometryLayout.
type LayoutResponse interface {
	RequestKey() (OutputName, RequestID)
	isLayoutResponse()
}

// TreeLayout carries a layout tree for the consumer to resolve.
type TreeLayout struct {
	RequestID RequestID
	Output    OutputName
	TreeID    string
	Root      *LayoutNode
}

// RequestKey returns the output and request the response belongs to.
func (t TreeLayout) RequestKey() (OutputName, RequestID) { return t.Output, t.RequestID }

func (TreeLayout) isLayoutResponse() {}

// GeometryLayout carries already resolved rectangles, one per window.
type GeometryLayout struct {
	RequestID  RequestID
	Output     OutputName
	Geometries []Rect
}

// RequestKey returns the output and request the response belongs to.
func (g GeometryLayout) RequestKey() (OutputName, RequestID) { return g.Output, g.RequestID }

func (GeometryLayout) isLayoutResponse() {}

// Placement pairs a window with the rectangle it must occupy.
type Placement struct {
	Window WindowID `json:"window"`
	Rect   Rect     `json:"rect"`
}
