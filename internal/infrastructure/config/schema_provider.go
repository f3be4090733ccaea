package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
)

// Section names for grouping config keys.
const (
	SectionLayout     = "Layout"
	SectionGaps       = "Gaps"
	SectionStrategies = "Strategies"
	SectionConsumer   = "Consumer"
	SectionSocket     = "Socket"
	SectionLogging    = "Logging"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 40)
	keys = append(keys, p.getLayoutKeys(defaults)...)
	keys = append(keys, p.getGapsKeys(defaults)...)
	keys = append(keys, p.getStrategyKeys(defaults)...)
	keys = append(keys, p.getConsumerKeys(defaults)...)
	keys = append(keys, p.getSocketKeys(defaults)...)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	return keys
}

func (*SchemaProvider) getLayoutKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "layout.default_strategy",
			Type:        "string",
			Default:     defaults.Layout.DefaultStrategy,
			Description: "Strategy every tag starts on",
			Values:      strategy.Names(),
			Section:     SectionLayout,
		},
		{
			Key:         "layout.cycle",
			Type:        "[]string",
			Default:     strings.Join(defaults.Layout.Cycle, ", "),
			Description: "Strategies walked by cycle forward/backward, in order",
			Values:      strategy.Names(),
			Section:     SectionLayout,
		},
		{
			Key:         "layout.mode",
			Type:        "string",
			Default:     string(defaults.Layout.Mode),
			Description: "Answer with a layout tree or with resolved rectangles",
			Values:      []string{string(LayoutModeTree), string(LayoutModeGeometry)},
			Section:     SectionLayout,
		},
		{
			Key:         "layout.geometry_cache_size",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Layout.GeometryCacheSize),
			Description: "Resolved layouts remembered in geometry mode (0 disables)",
			Range:       ">=0",
			Section:     SectionLayout,
		},
	}
}

func (*SchemaProvider) getGapsKeys(defaults *Config) []entity.ConfigKeyInfo {
	keys := []entity.ConfigKeyInfo{
		{
			Key:         "gaps.outer",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Gaps.Outer),
			Description: "Pixels kept free around the whole layout",
			Range:       ">=0",
			Section:     SectionGaps,
		},
		{
			Key:         "gaps.inner",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Gaps.Inner),
			Description: "Pixels between adjacent windows",
			Range:       ">=0",
			Section:     SectionGaps,
		},
	}
	for _, edge := range []string{"top", "right", "bottom", "left"} {
		keys = append(keys, entity.ConfigKeyInfo{
			Key:         "gaps." + edge,
			Type:        "int",
			Default:     strconv.Itoa(noEdgeOverride),
			Description: fmt.Sprintf("Outer gap on the %s edge (-1 uses gaps.outer)", edge),
			Range:       ">=-1",
			Section:     SectionGaps,
		})
	}
	return keys
}

func (*SchemaProvider) getStrategyKeys(defaults *Config) []entity.ConfigKeyInfo {
	s := defaults.Strategies
	directions := []string{string(entity.DirectionRow), string(entity.DirectionColumn)}
	return []entity.ConfigKeyInfo{
		{
			Key:         "strategies.line.direction",
			Type:        "string",
			Default:     s.Line.Direction,
			Description: "Axis the line strategy places windows along",
			Values:      directions,
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.line.reversed",
			Type:        "bool",
			Default:     strconv.FormatBool(s.Line.Reversed),
			Description: "Hand slots out from the far end",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.master_stack.master_factor",
			Type:        "float64",
			Default:     strconv.FormatFloat(s.MasterStack.MasterFactor, 'f', -1, 64),
			Description: "Share of the master area (clamped, 0 uses 0.5)",
			Range:       "0.1-0.9",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.master_stack.master_side",
			Type:        "string",
			Default:     s.MasterStack.MasterSide,
			Description: "Side the master area sits on",
			Values:      []string{"left", "right", "top", "bottom"},
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.master_stack.master_count",
			Type:        "int",
			Default:     strconv.Itoa(s.MasterStack.MasterCount),
			Description: "Windows kept in the master area",
			Range:       ">=0",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.master_stack.reversed",
			Type:        "bool",
			Default:     strconv.FormatBool(s.MasterStack.Reversed),
			Description: "Fill the stack from the far end",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.dwindle.split_factors",
			Type:        "[]float64",
			Default:     formatFactors(s.Dwindle.SplitFactors),
			Description: "First-half share per nesting level; the last value repeats",
			Range:       "0.1-0.9",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.spiral.split_factors",
			Type:        "[]float64",
			Default:     formatFactors(s.Spiral.SplitFactors),
			Description: "First-half share per nesting level; the last value repeats",
			Range:       "0.1-0.9",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.corner.width_factor",
			Type:        "float64",
			Default:     strconv.FormatFloat(s.Corner.WidthFactor, 'f', -1, 64),
			Description: "Width share of the corner column",
			Range:       "0.1-0.9",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.corner.height_factor",
			Type:        "float64",
			Default:     strconv.FormatFloat(s.Corner.HeightFactor, 'f', -1, 64),
			Description: "Height share of the corner window",
			Range:       "0.1-0.9",
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.corner.location",
			Type:        "string",
			Default:     s.Corner.Location,
			Description: "Corner the first window occupies",
			Values:      []string{"top_left", "top_right", "bottom_left", "bottom_right"},
			Section:     SectionStrategies,
		},
		{
			Key:         "strategies.fair.direction",
			Type:        "string",
			Default:     s.Fair.Direction,
			Description: "Axis the fair strategy stacks its lines along",
			Values:      directions,
			Section:     SectionStrategies,
		},
	}
}

func (*SchemaProvider) getConsumerKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "consumer.response_timeout_ms",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Consumer.ResponseTimeoutMs),
			Description: "Milliseconds to wait for a producer answer before falling back",
			Range:       ">=1",
			Section:     SectionConsumer,
		},
		{
			Key:         "consumer.max_malformed",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Consumer.MaxMalformed),
			Description: "Consecutive malformed messages before the producer is dropped (0 never)",
			Range:       ">=0",
			Section:     SectionConsumer,
		},
		{
			Key:         "consumer.fallback_strategy",
			Type:        "string",
			Default:     defaults.Consumer.FallbackStrategy,
			Description: "Strategy applied locally when the producer cannot answer",
			Values:      strategy.Names(),
			Section:     SectionConsumer,
		},
	}
}

func (*SchemaProvider) getSocketKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "socket.path",
			Type:        "string",
			Default:     defaults.Socket.Path,
			Description: "Producer socket (empty uses $XDG_RUNTIME_DIR/tessellate.sock)",
			Section:     SectionSocket,
		},
		{
			Key:         "socket.max_line_bytes",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Socket.MaxLineBytes),
			Description: "Longest accepted protocol line (0 uses 1 MiB)",
			Range:       ">=0",
			Section:     SectionSocket,
		},
	}
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Minimum log level",
			Values:      []string{"trace", "debug", "info", "warn", "error"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.enable_file_log",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Logging.EnableFileLog),
			Description: "Also write logs to a rotating file in logging.log_dir",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     defaults.Logging.LogDir,
			Description: "Directory for log files",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxSizeMB),
			Description: "Size at which the log file is rotated",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxBackups),
			Description: "Rotated files kept",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age_days",
			Type:        "int",
			Default:     strconv.Itoa(defaults.Logging.MaxAgeDays),
			Description: "Days rotated files are kept",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     strconv.FormatBool(defaults.Logging.Compress),
			Description: "Gzip rotated files",
			Section:     SectionLogging,
		},
	}
}

func formatFactors(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
