package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/tessellate/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, logging.ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel("chatty"))
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := logging.WithContext(context.Background(), logger)
	ctx = logging.WithComponent(ctx, "consumer")
	ctx = logging.WithOutput(ctx, "DP-1")
	logging.FromContext(ctx).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "consumer", line["component"])
	assert.Equal(t, "DP-1", line["output"])
	assert.Equal(t, "hello", line["message"])
}

func TestFromContext_NoLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithContext(context.Background(),
		logging.New(logging.Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf}))

	run := func() (err error) {
		defer logging.Recover(ctx, "test", &err)
		panic("boom")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, buf.String(), "recovered from panic")
}

func TestRotatingFile(t *testing.T) {
	dir := t.TempDir()
	f, err := logging.NewRotatingFile(logging.RotateOptions{Dir: dir, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	defer f.Close()

	chunk := []byte(strings.Repeat("x", 600*1024))
	for range 4 {
		_, err := f.Write(chunk)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if e.Name() != "tessellate.log" {
			backups++
		}
	}
	assert.Equal(t, 1, backups)

	info, err := os.Stat(filepath.Join(dir, "tessellate.log"))
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(1024*1024))
}
