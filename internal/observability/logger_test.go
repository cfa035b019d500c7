package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/drafter/drafter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggerConfig{Level: "warn", Format: "console", ServiceName: "drafter"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.Int("pages", 2))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "drafter.")
	assert.Contains(t, out, `"pages": 2`)
}

func TestNewLoggerJSONAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "drafter.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "debug", Format: "json", LogFile: file, MaxSize: 1}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Debug("page drawn", zap.Int("page", 1))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "page drawn", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"page":1`)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(config.LoggerConfig{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}
