// Package protocol defines the JSON lines wire format spoken between a layout
// consumer (the compositor) and a layout producer.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/tessellate/internal/domain/entity"
)

// Kind names the payload carried by an Envelope.
type Kind string

const (
	KindLayoutRequest    Kind = "layout_request"
	KindTreeResponse     Kind = "tree_response"
	KindGeometryResponse Kind = "geometry_response"
	KindForceLayout      Kind = "force_layout"
	KindCycle            Kind = "cycle"
)

// Message is any payload that can travel inside an Envelope.
type Message interface {
	Kind() Kind
}

// Envelope is one line on the wire.
type Envelope struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// LayoutRequest asks a producer to lay out one output.
type LayoutRequest struct {
	RequestID   uint64       `json:"request_id"`
	OutputName  string       `json:"output_name"`
	WindowCount int          `json:"window_count" jsonschema:"minimum=0"`
	TagIDs      []uint32     `json:"tag_ids"`
	UsableArea  *entity.Rect `json:"usable_area,omitempty"`
}

// Kind implements Message.
func (LayoutRequest) Kind() Kind { return KindLayoutRequest }

// TreeResponse answers a request with a layout tree.
type TreeResponse struct {
	RequestID  uint64 `json:"request_id"`
	OutputName string `json:"output_name"`
	TreeID     string `json:"tree_id"`
	RootNode   *Node  `json:"root_node"`
}

// Kind implements Message.
func (TreeResponse) Kind() Kind { return KindTreeResponse }

// GeometryResponse answers a request with one rectangle per window.
type GeometryResponse struct {
	RequestID  uint64        `json:"request_id"`
	OutputName string        `json:"output_name"`
	Geometries []entity.Rect `json:"geometries"`
}

// Kind implements Message.
func (GeometryResponse) Kind() Kind { return KindGeometryResponse }

// ForceLayout asks the consumer to start a new round for an output.
type ForceLayout struct {
	OutputName string `json:"output_name"`
}

// Kind implements Message.
func (ForceLayout) Kind() Kind { return KindForceLayout }

// CycleDirection selects which way a CycleCommand moves.
type CycleDirection string

const (
	CycleForward  CycleDirection = "forward"
	CycleBackward CycleDirection = "backward"
)

// CycleCommand moves the strategy selection of a tag on the producer.
type CycleCommand struct {
	TagID     uint32         `json:"tag_id"`
	Direction CycleDirection `json:"direction" jsonschema:"enum=forward,enum=backward"`
}

// Kind implements Message.
func (CycleCommand) Kind() Kind { return KindCycle }

// Wrap serializes a message into its envelope.
func Wrap(m Message) (Envelope, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", m.Kind(), err)
	}
	return Envelope{Kind: m.Kind(), Payload: payload}, nil
}

// Unwrap decodes and validates the payload of an envelope. Every failure wraps
// entity.ErrMalformedMessage.
func Unwrap(env Envelope) (Message, error) {
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return nil, malformed("%s: missing payload", env.Kind)
	}

	switch env.Kind {
	case KindLayoutRequest:
		var m LayoutRequest
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if _, err := m.ToEntity(); err != nil {
			return nil, err
		}
		return m, nil
	case KindTreeResponse:
		var m TreeResponse
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if _, err := m.ToEntity(); err != nil {
			return nil, err
		}
		return m, nil
	case KindGeometryResponse:
		var m GeometryResponse
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if _, err := m.ToEntity(); err != nil {
			return nil, err
		}
		return m, nil
	case KindForceLayout:
		var m ForceLayout
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if m.OutputName == "" {
			return nil, malformed("force_layout: empty output_name")
		}
		return m, nil
	case KindCycle:
		var m CycleCommand
		if err := decodePayload(env, &m); err != nil {
			return nil, err
		}
		if m.Direction != CycleForward && m.Direction != CycleBackward {
			return nil, malformed("cycle: invalid direction %q", m.Direction)
		}
		return m, nil
	default:
		return nil, malformed("unknown kind %q", env.Kind)
	}
}

func decodePayload(env Envelope, v any) error {
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return malformed("%s: %v", env.Kind, err)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", entity.ErrMalformedMessage, fmt.Sprintf(format, args...))
}

// NewLayoutRequest converts a domain request for the wire.
func NewLayoutRequest(req entity.LayoutRequest) LayoutRequest {
	m := LayoutRequest{
		RequestID:   uint64(req.ID),
		OutputName:  string(req.Output),
		WindowCount: req.WindowCount,
		TagIDs:      make([]uint32, 0, len(req.Tags)),
	}
	for _, t := range req.Tags {
		m.TagIDs = append(m.TagIDs, uint32(t))
	}
	if req.Area != (entity.Rect{}) {
		area := req.Area
		m.UsableArea = &area
	}
	return m
}

// ToEntity validates the request and converts it to the domain type.
func (m LayoutRequest) ToEntity() (entity.LayoutRequest, error) {
	if m.OutputName == "" {
		return entity.LayoutRequest{}, malformed("layout_request: empty output_name")
	}
	if m.WindowCount < 0 {
		return entity.LayoutRequest{}, malformed("layout_request: negative window_count %d", m.WindowCount)
	}
	req := entity.LayoutRequest{
		ID:          entity.RequestID(m.RequestID),
		Output:      entity.OutputName(m.OutputName),
		WindowCount: m.WindowCount,
		Tags:        make([]entity.TagID, 0, len(m.TagIDs)),
	}
	for _, t := range m.TagIDs {
		req.Tags = append(req.Tags, entity.TagID(t))
	}
	if m.UsableArea != nil {
		if m.UsableArea.Width < 0 || m.UsableArea.Height < 0 {
			return entity.LayoutRequest{}, malformed("layout_request: negative usable_area %+v", *m.UsableArea)
		}
		req.Area = *m.UsableArea
	}
	return req, nil
}

// NewResponse converts a domain response for the wire.
func NewResponse(resp entity.LayoutResponse) (Message, error) {
	switch r := resp.(type) {
	case entity.TreeLayout:
		return TreeResponse{
			RequestID:  uint64(r.RequestID),
			OutputName: string(r.Output),
			TreeID:     r.TreeID,
			RootNode:   NodeFromEntity(r.Root),
		}, nil
	case entity.GeometryLayout:
		geoms := r.Geometries
		if geoms == nil {
			geoms = []entity.Rect{}
		}
		return GeometryResponse{
			RequestID:  uint64(r.RequestID),
			OutputName: string(r.Output),
			Geometries: geoms,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported response type %T", resp)
	}
}

// ToEntity validates the tree and converts it to the domain type.
func (m TreeResponse) ToEntity() (entity.TreeLayout, error) {
	if m.OutputName == "" {
		return entity.TreeLayout{}, malformed("tree_response: empty output_name")
	}
	if m.RootNode == nil {
		return entity.TreeLayout{}, malformed("tree_response: missing root_node")
	}
	root, err := m.RootNode.ToEntity()
	if err != nil {
		return entity.TreeLayout{}, err
	}
	return entity.TreeLayout{
		RequestID: entity.RequestID(m.RequestID),
		Output:    entity.OutputName(m.OutputName),
		TreeID:    m.TreeID,
		Root:      root,
	}, nil
}

// ToEntity validates the rectangles and converts them to the domain type.
func (m GeometryResponse) ToEntity() (entity.GeometryLayout, error) {
	if m.OutputName == "" {
		return entity.GeometryLayout{}, malformed("geometry_response: empty output_name")
	}
	for i, r := range m.Geometries {
		if r.Width < 0 || r.Height < 0 {
			return entity.GeometryLayout{}, malformed("geometry_response: geometry %d has negative size %+v", i, r)
		}
	}
	return entity.GeometryLayout{
		RequestID:  entity.RequestID(m.RequestID),
		Output:     entity.OutputName(m.OutputName),
		Geometries: m.Geometries,
	}, nil
}

// ResponseToEntity converts a decoded response message to the domain type.
// ok is false when m is not a response.
func ResponseToEntity(m Message) (resp entity.LayoutResponse, ok bool, err error) {
	switch r := m.(type) {
	case TreeResponse:
		t, err := r.ToEntity()
		return t, true, err
	case GeometryResponse:
		g, err := r.ToEntity()
		return g, true, err
	default:
		return nil, false, nil
	}
}
