package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"waitstats/config"
)

func TestNewLoggerConsole(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{
		Level:  "debug",
		Format: "console",
	})
	assert.NoError(t, err)
	assert.NotNil(t, logger)

	logger.Debug("console logger works")
}

func TestNewLoggerFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(config.LogConfig{
		Level:              "info",
		Format:             "json",
		FileLoggingEnabled: true,
		Directory:          dir,
		Filename:           "waitstats.log",
		MaxSize:            1,
		MaxBackups:         1,
		MaxAge:             1,
	})
	assert.NoError(t, err)

	logger.Info("file logger works")
	assert.NoError(t, logger.Sync())

	contents, err := os.ReadFile(filepath.Join(dir, "waitstats.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(contents), "file logger works")
}

func TestNewLoggerBadLevelFallsBack(t *testing.T) {
	logger, err := NewLogger(config.LogConfig{
		Level:  "loud",
		Format: "console",
	})
	assert.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLoggerNoOutputs(t *testing.T) {
	_, err := NewLogger(config.LogConfig{
		Level:  "info",
		Format: "json",
	})
	assert.Error(t, err)
}
