package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ballotbox/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestProductionModeWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(Close)

	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", Format: "json", Dir: dir}, nil))

	Get(CategoryBallot).Info("should vanish")
	Close()

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs directory should not be created in production mode")
}

func TestDebugModeWritesCategorizedJSON(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(Close)

	c := config.LoggingConfig{Level: "debug", Format: "json", Dir: dir, DebugMode: true}
	require.NoError(t, Initialize(c, nil))

	Get(CategoryStore).Debug("record appended", zap.String("path", "votes.csv"))
	Close()

	data := readLogFile(t, dir)
	assert.Contains(t, data, `"logger":"store"`)
	assert.Contains(t, data, `"msg":"record appended"`)
	assert.Contains(t, data, `"path":"votes.csv"`)
}

func TestCategoryToggle(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(Close)

	c := config.LoggingConfig{
		Level:      "info",
		Format:     "text",
		Dir:        dir,
		DebugMode:  true,
		Categories: map[string]bool{"form": false},
	}
	require.NoError(t, Initialize(c, nil))

	assert.False(t, IsCategoryEnabled(CategoryForm))
	assert.True(t, IsCategoryEnabled(CategoryBallot), "unlisted categories default to enabled")

	Get(CategoryForm).Info("hidden")
	Get(CategoryBallot).Info("shown")
	Close()

	data := readLogFile(t, dir)
	assert.NotContains(t, data, "hidden")
	assert.Contains(t, data, "shown")
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(Close)

	require.NoError(t, Initialize(config.LoggingConfig{Level: "warn", Format: "json", Dir: dir, DebugMode: true}, nil))

	Get(CategoryBallot).Info("quiet")
	Get(CategoryBallot).Warn("loud")
	Close()

	data := readLogFile(t, dir)
	assert.NotContains(t, data, "quiet")
	assert.Contains(t, data, "loud")
}

func TestConsoleSinkIgnoresDebugMode(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(Close)

	require.NoError(t, Initialize(config.LoggingConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf)))

	Get(CategoryForm).Debug("verbose detail")
	Sync()

	assert.Contains(t, buf.String(), "verbose detail")
	assert.Contains(t, buf.String(), "form")
}

func TestDebugModeRequiresDir(t *testing.T) {
	t.Cleanup(Close)
	err := Initialize(config.LoggingConfig{Level: "info", Format: "json", DebugMode: true}, nil)
	assert.Error(t, err)
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(Close)
	require.NoError(t, Initialize(config.LoggingConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf)))

	timer := StartTimer(CategoryStore, "append")
	elapsed := timer.StopWithThreshold(-time.Nanosecond)
	Sync()

	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Contains(t, buf.String(), "append slow")
}

func readLogFile(t *testing.T, dir string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*_ballot.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}
