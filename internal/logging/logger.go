package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewLogger creates a logger writing to w at the given level. Any format
// other than FormatJSON produces text output.
func NewLogger(w io.Writer, logLevel, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupLogging configures the global slog handler based on log level and format.
// Call it once at startup, before any component logs.
func SetupLogging(logLevel, format string) {
	slog.SetDefault(NewLogger(os.Stdout, logLevel, format))
}
