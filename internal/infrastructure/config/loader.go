package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a configuration manager reading
// $XDG_CONFIG_HOME/tessellate/config.toml.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configFile)
}

// NewManagerAt creates a configuration manager reading the given TOML file.
// The file is created with defaults on first Load if it does not exist.
func NewManagerAt(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// Environment overrides use the TESSELLATE_ prefix,
	// e.g. TESSELLATE_LAYOUT_MODE or TESSELLATE_CONSUMER_MAX_MALFORMED.
	v.SetEnvPrefix("TESSELLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "TESSELLATE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TESSELLATE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TESSELLATE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TESSELLATE_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("socket.path", "TESSELLATE_SOCKET"); err != nil {
		return nil, fmt.Errorf("failed to bind TESSELLATE_SOCKET: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if _, err := os.Stat(m.configFile); errors.Is(err, os.ErrNotExist) {
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.configFile,
				createErr,
			)
		}
	}

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile, err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configFile,
			err,
		)
	}
	return config, nil
}

// normalizeConfig lowercases enum values and moves the default strategy to
// the front of the cycle.
func normalizeConfig(config *Config) {
	config.Layout.Mode = LayoutMode(strings.ToLower(strings.TrimSpace(string(config.Layout.Mode))))
	if config.Layout.Mode == "" {
		config.Layout.Mode = LayoutModeTree
	}

	for i, name := range config.Layout.Cycle {
		config.Layout.Cycle[i] = normalizeName(name)
	}
	config.Layout.DefaultStrategy = normalizeName(config.Layout.DefaultStrategy)
	config.Consumer.FallbackStrategy = normalizeName(config.Consumer.FallbackStrategy)

	if def := config.Layout.DefaultStrategy; def != "" {
		cycle := slices.DeleteFunc(slices.Clone(config.Layout.Cycle), func(n string) bool { return n == def })
		config.Layout.Cycle = append([]string{def}, cycle...)
	}

	s := &config.Strategies
	s.Line.Direction = strings.ToLower(strings.TrimSpace(s.Line.Direction))
	s.Fair.Direction = strings.ToLower(strings.TrimSpace(s.Fair.Direction))
	s.MasterStack.MasterSide = strings.ToLower(strings.TrimSpace(s.MasterStack.MasterSide))
	s.Corner.Location = strings.ToLower(strings.TrimSpace(s.Corner.Location))

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// normalizeName accepts "master-stack" for "master_stack".
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	configCopy.Layout.Cycle = slices.Clone(m.config.Layout.Cycle)
	configCopy.Strategies.Dwindle.SplitFactors = slices.Clone(m.config.Strategies.Dwindle.SplitFactors)
	configCopy.Strategies.Spiral.SplitFactors = slices.Clone(m.config.Strategies.Spiral.SplitFactors)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), m.configFile); err != nil {
		return err
	}
	return GenerateSchemaFile(SchemaPathFor(m.configFile))
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLayoutDefaults(defaults)
	m.setGapsDefaults(defaults)
	m.setStrategyDefaults(defaults)
	m.setConsumerDefaults(defaults)
	m.setSocketDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setLayoutDefaults(defaults *Config) {
	m.viper.SetDefault("layout.default_strategy", defaults.Layout.DefaultStrategy)
	m.viper.SetDefault("layout.cycle", defaults.Layout.Cycle)
	m.viper.SetDefault("layout.mode", string(defaults.Layout.Mode))
	m.viper.SetDefault("layout.geometry_cache_size", defaults.Layout.GeometryCacheSize)
}

func (m *Manager) setGapsDefaults(defaults *Config) {
	m.viper.SetDefault("gaps.outer", defaults.Gaps.Outer)
	m.viper.SetDefault("gaps.inner", defaults.Gaps.Inner)
	m.viper.SetDefault("gaps.top", defaults.Gaps.Top)
	m.viper.SetDefault("gaps.right", defaults.Gaps.Right)
	m.viper.SetDefault("gaps.bottom", defaults.Gaps.Bottom)
	m.viper.SetDefault("gaps.left", defaults.Gaps.Left)
}

func (m *Manager) setStrategyDefaults(defaults *Config) {
	s := defaults.Strategies
	m.viper.SetDefault("strategies.line.direction", s.Line.Direction)
	m.viper.SetDefault("strategies.line.reversed", s.Line.Reversed)
	m.viper.SetDefault("strategies.master_stack.master_factor", s.MasterStack.MasterFactor)
	m.viper.SetDefault("strategies.master_stack.master_side", s.MasterStack.MasterSide)
	m.viper.SetDefault("strategies.master_stack.master_count", s.MasterStack.MasterCount)
	m.viper.SetDefault("strategies.master_stack.reversed", s.MasterStack.Reversed)
	m.viper.SetDefault("strategies.dwindle.split_factors", s.Dwindle.SplitFactors)
	m.viper.SetDefault("strategies.spiral.split_factors", s.Spiral.SplitFactors)
	m.viper.SetDefault("strategies.corner.width_factor", s.Corner.WidthFactor)
	m.viper.SetDefault("strategies.corner.height_factor", s.Corner.HeightFactor)
	m.viper.SetDefault("strategies.corner.location", s.Corner.Location)
	m.viper.SetDefault("strategies.fair.direction", s.Fair.Direction)
}

func (m *Manager) setConsumerDefaults(defaults *Config) {
	m.viper.SetDefault("consumer.response_timeout_ms", defaults.Consumer.ResponseTimeoutMs)
	m.viper.SetDefault("consumer.max_malformed", defaults.Consumer.MaxMalformed)
	m.viper.SetDefault("consumer.fallback_strategy", defaults.Consumer.FallbackStrategy)
}

func (m *Manager) setSocketDefaults(defaults *Config) {
	m.viper.SetDefault("socket.path", defaults.Socket.Path)
	m.viper.SetDefault("socket.max_line_bytes", defaults.Socket.MaxLineBytes)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
