package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bnema/tessellate/internal/application/usecase"
	"github.com/bnema/tessellate/internal/domain/entity"
	"github.com/bnema/tessellate/internal/domain/strategy"
	"github.com/bnema/tessellate/internal/infrastructure/ipc"
	"github.com/bnema/tessellate/internal/logging"
)

// OuterEdges resolves the per-edge overrides against the scalar outer gap.
func (g GapsConfig) OuterEdges() entity.Edges {
	pick := func(edge int) int {
		if edge < 0 {
			return g.Outer
		}
		return edge
	}
	return entity.Edges{Top: pick(g.Top), Right: pick(g.Right), Bottom: pick(g.Bottom), Left: pick(g.Left)}
}

// StrategyParams returns the parameters of every builtin strategy. Values are
// assumed validated; unparsable enums fall back to their defaults.
func (c *Config) StrategyParams() map[string]strategy.Params {
	base := strategy.Params{OuterGaps: c.Gaps.OuterEdges(), InnerGaps: c.Gaps.Inner}
	s := c.Strategies

	line := base
	line.Direction, _ = entity.ParseDirection(s.Line.Direction)
	line.Reversed = s.Line.Reversed

	ms := base
	ms.MasterFactor = s.MasterStack.MasterFactor
	ms.MasterSide, _ = strategy.ParseSide(s.MasterStack.MasterSide)
	ms.MasterCount = s.MasterStack.MasterCount
	ms.Reversed = s.MasterStack.Reversed

	dwindle := base
	dwindle.SplitFactors = s.Dwindle.SplitFactors

	spiral := base
	spiral.SplitFactors = s.Spiral.SplitFactors

	corner := base
	corner.CornerWidthFactor = s.Corner.WidthFactor
	corner.CornerHeightFactor = s.Corner.HeightFactor
	corner.CornerLocation, _ = strategy.ParseCornerLocation(s.Corner.Location)

	fair := base
	fair.Direction, _ = entity.ParseDirection(s.Fair.Direction)

	return map[string]strategy.Params{
		strategy.NameLine:        line,
		strategy.NameMasterStack: ms,
		strategy.NameDwindle:     dwindle,
		strategy.NameSpiral:      spiral,
		strategy.NameCorner:      corner,
		strategy.NameFair:        fair,
	}
}

// BuildStrategies builds the configured cycle, in order.
func (c *Config) BuildStrategies() ([]strategy.Strategy, error) {
	return strategy.BuildAll(c.Layout.Cycle, c.StrategyParams())
}

// BuildCycle builds the per-tag strategy cycle.
func (c *Config) BuildCycle() (*strategy.Cycle, error) {
	return strategy.BuildCycle(c.Layout.Cycle, c.StrategyParams())
}

// ResponseMode converts the layout mode for the producer.
func (c *Config) ResponseMode() usecase.ResponseMode {
	if c.Layout.Mode == LayoutModeGeometry {
		return usecase.ModeGeometry
	}
	return usecase.ModeTree
}

// ConsumerSettings converts the consumer section.
func (c *Config) ConsumerSettings() (usecase.ConsumerConfig, error) {
	cfg := usecase.ConsumerConfig{
		ResponseTimeout: time.Duration(c.Consumer.ResponseTimeoutMs) * time.Millisecond,
		MaxMalformed:    c.Consumer.MaxMalformed,
	}
	if name := c.Consumer.FallbackStrategy; name != "" {
		fb, err := strategy.Build(name, c.StrategyParams()[name])
		if err != nil {
			return usecase.ConsumerConfig{}, fmt.Errorf("consumer.fallback_strategy: %w", err)
		}
		cfg.Fallback = fb
	}
	return cfg, nil
}

// SocketPath returns the configured socket, or the one in the runtime dir.
func (c *Config) SocketPath() (string, error) {
	if c.Socket.Path != "" {
		return c.Socket.Path, nil
	}
	dir, err := GetRuntimeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine runtime directory: %w", err)
	}
	return ipc.SocketPath(dir), nil
}

// LoggerConfig converts the logging section. With file logging enabled
// records go to stderr and a rotating file; the returned closer releases the
// file.
func (c *Config) LoggerConfig() (logging.Config, io.Closer, error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Logging.Level)
	if c.Logging.Format != "" {
		lc.Format = c.Logging.Format
	}
	if !c.Logging.EnableFileLog {
		return lc, nopCloser{}, nil
	}

	rf, err := logging.NewRotatingFile(logging.RotateOptions{
		Dir:        c.Logging.LogDir,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	})
	if err != nil {
		return lc, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	lc.Output = io.MultiWriter(os.Stderr, rf)
	return lc, rf, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
