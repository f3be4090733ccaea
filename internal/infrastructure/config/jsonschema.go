package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the JSON schema of the configuration file.
func JSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/tessellate/config.schema.json"
	schema.Title = "Tessellate Configuration"
	schema.Description = "Configuration schema for tessellate, a layout producer for tiling compositors"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the JSON schema next to the configuration.
// This is called automatically when a default config is created.
func GenerateSchemaFile(path string) error {
	data, err := JSONSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}

// SchemaPathFor returns where the schema of configFile is written.
func SchemaPathFor(configFile string) string {
	return filepath.Join(filepath.Dir(configFile), "config.schema.json")
}
