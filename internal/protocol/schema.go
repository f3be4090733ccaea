package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// catalog lists every payload so a single schema documents the whole wire
// format.
type catalog struct {
	Envelope         Envelope         `json:"envelope"`
	LayoutRequest    LayoutRequest    `json:"layout_request"`
	TreeResponse     TreeResponse     `json:"tree_response"`
	GeometryResponse GeometryResponse `json:"geometry_response"`
	ForceLayout      ForceLayout      `json:"force_layout"`
	Cycle            CycleCommand     `json:"cycle"`
}

// Schema returns the JSON schema of the wire format, pretty printed.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&catalog{})

	schema.ID = "https://github.com/bnema/tessellate/protocol.schema.json"
	schema.Title = "Tessellate Layout Protocol"
	schema.Description = "Messages exchanged as JSON lines between a layout consumer and a layout producer"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
