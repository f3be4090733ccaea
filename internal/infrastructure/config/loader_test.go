package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tessellate/internal/domain/strategy"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), filePerm))
	return path
}

func TestSetLayoutDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, strategy.NameMasterStack, mgr.viper.GetString("layout.default_strategy"))
	assert.Equal(t, "tree", mgr.viper.GetString("layout.mode"))
	assert.Equal(t, 250, mgr.viper.GetInt("consumer.response_timeout_ms"))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)

	require.NoError(t, mgr.Load())

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "config.schema.json"))

	cfg := mgr.Get()
	defaults := DefaultConfig()
	assert.Equal(t, defaults.Layout, cfg.Layout)
	assert.Equal(t, defaults.Gaps, cfg.Gaps)
	assert.Equal(t, defaults.Strategies, cfg.Strategies)
	assert.Equal(t, defaults.Consumer, cfg.Consumer)
}

func TestManager_LoadReadsFileAndNormalizes(t *testing.T) {
	path := writeFile(t, `
[layout]
default_strategy = "Dwindle"
cycle = ["line", "dwindle", "master-stack"]
mode = "GEOMETRY"

[gaps]
outer = 4
inner = 2
left = 0

[strategies.master_stack]
master_side = "Right"
`)
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, []string{"dwindle", "line", "master_stack"}, cfg.Layout.Cycle)
	assert.Equal(t, LayoutModeGeometry, cfg.Layout.Mode)
	assert.Equal(t, "right", cfg.Strategies.MasterStack.MasterSide)
	assert.Equal(t, 4, cfg.Gaps.Outer)
	assert.Equal(t, 0, cfg.Gaps.Left)
	assert.Equal(t, noEdgeOverride, cfg.Gaps.Top, "unset edges keep the default")
}

func TestManager_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "[consumer]\nmax_malformed = 9\n")
	t.Setenv("TESSELLATE_CONSUMER_MAX_MALFORMED", "2")
	t.Setenv("TESSELLATE_LOG_LEVEL", "debug")

	mgr, err := NewManagerAt(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.Equal(t, 2, mgr.Get().Consumer.MaxMalformed)
	assert.Equal(t, "debug", mgr.Get().Logging.Level)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, `
[layout]
cycle = ["line", "tetris"]

[consumer]
max_malformed = -1
`)
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown strategy "tetris"`)
	assert.Contains(t, err.Error(), "consumer.max_malformed")
}

func TestManager_LoadRejectsBrokenTOML(t *testing.T) {
	path := writeFile(t, "[layout\nmode = ")
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be valid TOML")
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	path := writeFile(t, "[layout]\nmode = \"tree\"\n")
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var got *Config
	mgr.OnConfigChange(func(c *Config) { got = c })

	require.NoError(t, os.WriteFile(path, []byte("[layout]\nmode = \"geometry\"\n"), filePerm))
	require.NoError(t, mgr.Reload())

	require.NotNil(t, got)
	assert.Equal(t, LayoutModeGeometry, got.Layout.Mode)
}

func TestManager_ReloadKeepsPreviousOnError(t *testing.T) {
	path := writeFile(t, "[layout]\nmode = \"geometry\"\n")
	mgr, err := NewManagerAt(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	called := false
	mgr.OnConfigChange(func(*Config) { called = true })

	require.NoError(t, os.WriteFile(path, []byte("[layout]\nmode = \"sideways\"\n"), filePerm))
	assert.Error(t, mgr.Reload())

	assert.False(t, called)
	assert.Equal(t, LayoutModeGeometry, mgr.Get().Layout.Mode)
}

func TestManager_GetReturnsCopy(t *testing.T) {
	mgr, err := NewManagerAt(writeFile(t, ""))
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Layout.Cycle[0] = "changed"

	assert.NotEqual(t, "changed", mgr.Get().Layout.Cycle[0])
}
