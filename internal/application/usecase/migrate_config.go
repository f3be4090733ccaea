package usecase

import (
	"context"

	"github.com/bnema/tessellate/internal/application/port"
	"github.com/bnema/tessellate/internal/logging"
)

// DetectChangesInput holds the input for detecting config changes.
type DetectChangesInput struct{}

// DetectChangesOutput holds the result of change detection.
type DetectChangesOutput struct {
	// HasChanges is true if any changes were detected.
	HasChanges bool
	// Changes contains all detected changes.
	Changes []port.KeyChange
	// DiffText is a formatted diff-like string representation.
	DiffText string
}

// MigrateConfigInput holds the input for migrating config.
type MigrateConfigInput struct{}

// MigrateConfigOutput holds the result of the migration.
type MigrateConfigOutput struct {
	// AppliedKeys describes each applied change.
	AppliedKeys []string
	// ConfigFile is the path to the config file.
	ConfigFile string
}

// MigrateConfigUseCase brings an old config file up to the current keys.
type MigrateConfigUseCase struct {
	migrator      port.ConfigMigrator
	diffFormatter port.DiffFormatter
}

// NewMigrateConfigUseCase creates a new migrate config use case.
func NewMigrateConfigUseCase(migrator port.ConfigMigrator, diffFormatter port.DiffFormatter) *MigrateConfigUseCase {
	return &MigrateConfigUseCase{
		migrator:      migrator,
		diffFormatter: diffFormatter,
	}
}

// DetectChanges detects all config changes and returns a diff-like output.
func (uc *MigrateConfigUseCase) DetectChanges(ctx context.Context, _ DetectChangesInput) (*DetectChangesOutput, error) {
	log := logging.FromContext(ctx)

	changes, err := uc.migrator.DetectChanges()
	if err != nil {
		log.Warn().Err(err).Msg("config change detection failed")
		return nil, err
	}

	if len(changes) == 0 {
		log.Debug().Msg("no config changes detected")
		return &DetectChangesOutput{DiffText: uc.diffFormatter.FormatChangesAsDiff(nil)}, nil
	}

	log.Debug().Int("changes", len(changes)).Msg("config changes detected")

	return &DetectChangesOutput{
		HasChanges: true,
		Changes:    changes,
		DiffText:   uc.diffFormatter.FormatChangesAsDiff(changes),
	}, nil
}

// Execute rewrites the config file with added, renamed and dropped keys applied.
func (uc *MigrateConfigUseCase) Execute(ctx context.Context, _ MigrateConfigInput) (*MigrateConfigOutput, error) {
	log := logging.FromContext(ctx)
	configFile := uc.migrator.GetConfigFile()

	applied, err := uc.migrator.Migrate()
	if err != nil {
		log.Error().Err(err).Str("config_file", configFile).Msg("config migration failed")
		return nil, err
	}

	if len(applied) == 0 {
		log.Debug().Msg("no migration needed")
		return &MigrateConfigOutput{ConfigFile: configFile}, nil
	}

	log.Info().
		Int("applied_keys", len(applied)).
		Str("config_file", configFile).
		Msg("config migration completed")

	return &MigrateConfigOutput{
		AppliedKeys: applied,
		ConfigFile:  configFile,
	}, nil
}
