package port

// KeyChangeType classifies one difference between a config file and the defaults.
type KeyChangeType int

const (
	// KeyChangeAdded is a default key missing from the file.
	KeyChangeAdded KeyChangeType = iota
	// KeyChangeRemoved is a key in the file that no longer exists.
	KeyChangeRemoved
	// KeyChangeRenamed pairs a removed key with a similar added key.
	KeyChangeRenamed
)

// KeyChange describes one config key difference.
type KeyChange struct {
	Type     KeyChangeType
	OldKey   string
	NewKey   string
	OldValue string
	NewValue string
}

// ConfigMigrator compares a config file with the defaults and rewrites it.
type ConfigMigrator interface {
	// DetectChanges returns every added, removed or renamed key.
	// A missing config file yields no changes.
	DetectChanges() ([]KeyChange, error)

	// Migrate applies the detected changes and rewrites the file.
	// Returns a description of each applied change.
	Migrate() ([]string, error)

	// GetConfigFile returns the path of the file being migrated.
	GetConfigFile() string
}

// DiffFormatter renders key changes for display.
type DiffFormatter interface {
	FormatChangesAsDiff(changes []KeyChange) string
}
