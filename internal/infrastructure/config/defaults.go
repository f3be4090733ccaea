package config

import (
	"github.com/bnema/tessellate/internal/domain/strategy"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

const (
	defaultOuterGap          = 8
	defaultInnerGap          = 8
	defaultMasterFactor      = 0.55
	defaultSplitFactor       = 0.5
	defaultCornerFactor      = 0.5
	defaultResponseTimeoutMs = 250
	defaultMaxMalformed      = 5
	defaultGeometryCacheSize = 64
	defaultMaxLogSizeMB      = 10
	defaultMaxLogBackups     = 3
	defaultMaxLogAgeDays     = 7

	// noEdgeOverride keeps the scalar outer gap on that edge.
	noEdgeOverride = -1
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values for tessellate.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			DefaultStrategy: strategy.NameMasterStack,
			Cycle: []string{
				strategy.NameMasterStack,
				strategy.NameDwindle,
				strategy.NameFair,
				strategy.NameLine,
			},
			Mode:              LayoutModeTree,
			GeometryCacheSize: defaultGeometryCacheSize,
		},
		Gaps: GapsConfig{
			Outer:  defaultOuterGap,
			Inner:  defaultInnerGap,
			Top:    noEdgeOverride,
			Right:  noEdgeOverride,
			Bottom: noEdgeOverride,
			Left:   noEdgeOverride,
		},
		Strategies: StrategiesConfig{
			Line: LineConfig{Direction: "row"},
			MasterStack: MasterStackConfig{
				MasterFactor: defaultMasterFactor,
				MasterSide:   string(strategy.SideLeft),
				MasterCount:  1,
			},
			Dwindle: BisectConfig{SplitFactors: []float64{defaultSplitFactor}},
			Spiral:  BisectConfig{SplitFactors: []float64{defaultSplitFactor}},
			Corner: CornerConfig{
				WidthFactor:  defaultCornerFactor,
				HeightFactor: defaultCornerFactor,
				Location:     string(strategy.CornerTopLeft),
			},
			Fair: FairConfig{Direction: "column"},
		},
		Consumer: ConsumerConfig{
			ResponseTimeoutMs: defaultResponseTimeoutMs,
			MaxMalformed:      defaultMaxMalformed,
			FallbackStrategy:  strategy.NameFair,
		},
		Socket: SocketConfig{},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			LogDir:        getDefaultLogDir(),
			EnableFileLog: false,
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxLogBackups,
			MaxAgeDays:    defaultMaxLogAgeDays,
		},
	}
}
