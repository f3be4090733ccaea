package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_StartsOnDefaultStrategy(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Layout.DefaultStrategy, cfg.Layout.Cycle[0])
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.EnableFileLog)
}
