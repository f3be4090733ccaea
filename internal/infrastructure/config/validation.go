package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateGaps(config)...)
	validationErrors = append(validationErrors, validateStrategies(config)...)
	validationErrors = append(validationErrors, validateConsumer(config)...)
	validationErrors = append(validationErrors, validateSocket(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	// If there are validation errors, return them
	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

// Validate checks a configuration the way Load does.
func Validate(config *Config) error {
	return validateConfig(config)
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	if len(config.Layout.Cycle) == 0 {
		validationErrors = append(validationErrors, "layout.cycle must name at least one strategy")
	}
	for _, name := range config.Layout.Cycle {
		if !strategy.IsBuiltin(name) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("layout.cycle: unknown strategy %q (valid: %s)", name, strings.Join(strategy.Names(), ", ")))
		}
	}
	switch config.Layout.Mode {
	case LayoutModeTree, LayoutModeGeometry:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("layout.mode must be tree or geometry, got %q", config.Layout.Mode))
	}
	if config.Layout.GeometryCacheSize < 0 {
		validationErrors = append(validationErrors, "layout.geometry_cache_size must be non-negative")
	}
	return validationErrors
}

func validateGaps(config *Config) []string {
	var validationErrors []string
	g := config.Gaps
	if g.Outer < 0 {
		validationErrors = append(validationErrors, "gaps.outer must be non-negative")
	}
	if g.Inner < 0 {
		validationErrors = append(validationErrors, "gaps.inner must be non-negative")
	}
	edges := []struct {
		key   string
		value int
	}{{"gaps.top", g.Top}, {"gaps.right", g.Right}, {"gaps.bottom", g.Bottom}, {"gaps.left", g.Left}}
	for _, e := range edges {
		if e.value < noEdgeOverride {
			validationErrors = append(validationErrors, e.key+" must be -1 (use gaps.outer) or non-negative")
		}
	}
	return validationErrors
}

func validateStrategies(config *Config) []string {
	var validationErrors []string
	s := config.Strategies

	if _, err := entity.ParseDirection(s.Line.Direction); err != nil {
		validationErrors = append(validationErrors, "strategies.line.direction: "+err.Error())
	}
	if _, err := entity.ParseDirection(s.Fair.Direction); err != nil {
		validationErrors = append(validationErrors, "strategies.fair.direction: "+err.Error())
	}

	validationErrors = append(validationErrors, validateFactor("strategies.master_stack.master_factor", s.MasterStack.MasterFactor)...)
	if _, err := strategy.ParseSide(s.MasterStack.MasterSide); err != nil {
		validationErrors = append(validationErrors, "strategies.master_stack.master_side: "+err.Error())
	}
	if s.MasterStack.MasterCount < 0 {
		validationErrors = append(validationErrors, "strategies.master_stack.master_count must be non-negative")
	}

	for i, f := range s.Dwindle.SplitFactors {
		validationErrors = append(validationErrors, validateFactor(fmt.Sprintf("strategies.dwindle.split_factors[%d]", i), f)...)
	}
	for i, f := range s.Spiral.SplitFactors {
		validationErrors = append(validationErrors, validateFactor(fmt.Sprintf("strategies.spiral.split_factors[%d]", i), f)...)
	}

	validationErrors = append(validationErrors, validateFactor("strategies.corner.width_factor", s.Corner.WidthFactor)...)
	validationErrors = append(validationErrors, validateFactor("strategies.corner.height_factor", s.Corner.HeightFactor)...)
	if _, err := strategy.ParseCornerLocation(s.Corner.Location); err != nil {
		validationErrors = append(validationErrors, "strategies.corner.location: "+err.Error())
	}
	return validationErrors
}

// validateFactor accepts 0 (use the default) or a value in (0, 1).
// Values are clamped to 0.1-0.9 when used.
func validateFactor(key string, f float64) []string {
	if math.IsNaN(f) || f < 0 || f >= 1 {
		return []string{key + " must be between 0 and 1 (exclusive); 0 uses the default"}
	}
	return nil
}

func validateConsumer(config *Config) []string {
	var validationErrors []string
	if config.Consumer.ResponseTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "consumer.response_timeout_ms must be positive")
	}
	if config.Consumer.MaxMalformed < 0 {
		validationErrors = append(validationErrors, "consumer.max_malformed must be non-negative (0 disables the limit)")
	}
	if fb := config.Consumer.FallbackStrategy; fb != "" && !strategy.IsBuiltin(fb) {
		validationErrors = append(validationErrors, fmt.Sprintf("consumer.fallback_strategy: unknown strategy %q", fb))
	}
	return validationErrors
}

func validateSocket(config *Config) []string {
	if config.Socket.MaxLineBytes < 0 {
		return []string{"socket.max_line_bytes must be non-negative (0 uses the default)"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, got %q", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json, got %q", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}
