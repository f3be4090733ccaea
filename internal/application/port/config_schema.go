package port

import "github.com/bnema/tessellate/internal/domain/entity"

// ConfigSchemaProvider provides configuration schema information.
type ConfigSchemaProvider interface {
	// GetSchema returns all configuration keys with their metadata.
	GetSchema() []entity.ConfigKeyInfo
}
