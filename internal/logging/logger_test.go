package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, want := range testCases {
		assert.Equal(t, want, ParseLevel(input), "input %q", input)
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", FormatText)

	logger.Info("Cart line created", "item_id", 1)
	assert.Empty(t, buf.String())

	logger.Warn("Order rejected outside checkout", "screen", "home")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "screen=home")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", FormatJSON)

	logger.Info("Order placed", "units", 2)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record), buf.String())
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "Order placed", record["msg"])
	assert.Equal(t, float64(2), record["units"])
}
