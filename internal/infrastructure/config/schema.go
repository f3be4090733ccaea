package config

// Config represents the complete configuration for tessellate.
type Config struct {
	// Layout selects the strategies and how the producer answers.
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout" toml:"layout" json:"layout"`
	// Gaps applies to every strategy that does not override them.
	Gaps GapsConfig `mapstructure:"gaps" yaml:"gaps" toml:"gaps" json:"gaps"`
	// Strategies holds per-strategy parameters.
	Strategies StrategiesConfig `mapstructure:"strategies" yaml:"strategies" toml:"strategies" json:"strategies"`
	// Consumer tunes the compositor side of the protocol.
	Consumer ConsumerConfig `mapstructure:"consumer" yaml:"consumer" toml:"consumer" json:"consumer"`
	Socket   SocketConfig   `mapstructure:"socket" yaml:"socket" toml:"socket" json:"socket"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
}

// LayoutMode selects what a producer answers with.
type LayoutMode string

const (
	LayoutModeTree     LayoutMode = "tree"
	LayoutModeGeometry LayoutMode = "geometry"
)

// LayoutConfig selects the strategies offered per tag.
type LayoutConfig struct {
	// DefaultStrategy is where every tag starts. It is moved to the front of
	// the cycle, or added there when missing.
	DefaultStrategy string `mapstructure:"default_strategy" yaml:"default_strategy" toml:"default_strategy" json:"default_strategy"`
	// Cycle is the ordered list walked by cycle forward/backward.
	Cycle []string `mapstructure:"cycle" yaml:"cycle" toml:"cycle" json:"cycle"`
	// Mode is tree (consumer resolves) or geometry (producer resolves).
	Mode LayoutMode `mapstructure:"mode" yaml:"mode" toml:"mode" json:"mode" jsonschema:"enum=tree,enum=geometry"`
	// GeometryCacheSize bounds the resolved layouts kept in geometry mode.
	// Zero disables the cache.
	GeometryCacheSize int `mapstructure:"geometry_cache_size" yaml:"geometry_cache_size" toml:"geometry_cache_size" json:"geometry_cache_size" jsonschema:"minimum=0"`
}

// GapsConfig holds the shared gap sizes in pixels.
type GapsConfig struct {
	// Outer is applied on all four sides unless an edge override is set.
	Outer int `mapstructure:"outer" yaml:"outer" toml:"outer" json:"outer" jsonschema:"minimum=0"`
	Inner int `mapstructure:"inner" yaml:"inner" toml:"inner" json:"inner" jsonschema:"minimum=0"`
	// Edge overrides; -1 keeps Outer.
	Top    int `mapstructure:"top" yaml:"top" toml:"top" json:"top" jsonschema:"minimum=-1"`
	Right  int `mapstructure:"right" yaml:"right" toml:"right" json:"right" jsonschema:"minimum=-1"`
	Bottom int `mapstructure:"bottom" yaml:"bottom" toml:"bottom" json:"bottom" jsonschema:"minimum=-1"`
	Left   int `mapstructure:"left" yaml:"left" toml:"left" json:"left" jsonschema:"minimum=-1"`
}

// StrategiesConfig holds the parameters of each builtin strategy.
type StrategiesConfig struct {
	Line        LineConfig        `mapstructure:"line" yaml:"line" toml:"line" json:"line"`
	MasterStack MasterStackConfig `mapstructure:"master_stack" yaml:"master_stack" toml:"master_stack" json:"master_stack"`
	Dwindle     BisectConfig      `mapstructure:"dwindle" yaml:"dwindle" toml:"dwindle" json:"dwindle"`
	Spiral      BisectConfig      `mapstructure:"spiral" yaml:"spiral" toml:"spiral" json:"spiral"`
	Corner      CornerConfig      `mapstructure:"corner" yaml:"corner" toml:"corner" json:"corner"`
	Fair        FairConfig        `mapstructure:"fair" yaml:"fair" toml:"fair" json:"fair"`
}

// LineConfig configures the line strategy.
type LineConfig struct {
	Direction string `mapstructure:"direction" yaml:"direction" toml:"direction" json:"direction" jsonschema:"enum=row,enum=column"`
	Reversed  bool   `mapstructure:"reversed" yaml:"reversed" toml:"reversed" json:"reversed"`
}

// MasterStackConfig configures the master/stack strategy.
type MasterStackConfig struct {
	// MasterFactor is the share of the master group, clamped to 0.1-0.9.
	MasterFactor float64 `mapstructure:"master_factor" yaml:"master_factor" toml:"master_factor" json:"master_factor"`
	MasterSide   string  `mapstructure:"master_side" yaml:"master_side" toml:"master_side" json:"master_side" jsonschema:"enum=left,enum=right,enum=top,enum=bottom"`
	MasterCount  int     `mapstructure:"master_count" yaml:"master_count" toml:"master_count" json:"master_count" jsonschema:"minimum=0"`
	Reversed     bool    `mapstructure:"reversed" yaml:"reversed" toml:"reversed" json:"reversed"`
}

// BisectConfig configures dwindle and spiral.
type BisectConfig struct {
	// SplitFactors gives the share of the first half at each level. The last
	// value repeats; empty means 0.5 everywhere.
	SplitFactors []float64 `mapstructure:"split_factors" yaml:"split_factors" toml:"split_factors" json:"split_factors"`
}

// CornerConfig configures the corner strategy.
type CornerConfig struct {
	WidthFactor  float64 `mapstructure:"width_factor" yaml:"width_factor" toml:"width_factor" json:"width_factor"`
	HeightFactor float64 `mapstructure:"height_factor" yaml:"height_factor" toml:"height_factor" json:"height_factor"`
	Location     string  `mapstructure:"location" yaml:"location" toml:"location" json:"location" jsonschema:"enum=top_left,enum=top_right,enum=bottom_left,enum=bottom_right"`
}

// FairConfig configures the fair strategy.
type FairConfig struct {
	Direction string `mapstructure:"direction" yaml:"direction" toml:"direction" json:"direction" jsonschema:"enum=row,enum=column"`
}

// ConsumerConfig tunes how the compositor copes with a misbehaving producer.
type ConsumerConfig struct {
	ResponseTimeoutMs int `mapstructure:"response_timeout_ms" yaml:"response_timeout_ms" toml:"response_timeout_ms" json:"response_timeout_ms" jsonschema:"minimum=1"`
	MaxMalformed      int `mapstructure:"max_malformed" yaml:"max_malformed" toml:"max_malformed" json:"max_malformed" jsonschema:"minimum=0"`
	// FallbackStrategy lays windows out locally when the producer cannot.
	FallbackStrategy string `mapstructure:"fallback_strategy" yaml:"fallback_strategy" toml:"fallback_strategy" json:"fallback_strategy"`
}

// SocketConfig locates the producer socket.
type SocketConfig struct {
	// Path overrides $XDG_RUNTIME_DIR/tessellate.sock.
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	// MaxLineBytes caps one received protocol line.
	MaxLineBytes int `mapstructure:"max_line_bytes" yaml:"max_line_bytes" toml:"max_line_bytes" json:"max_line_bytes" jsonschema:"minimum=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}
