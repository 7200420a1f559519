package logging

import (
	"io"
	"log/slog"
	"strings"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// New creates a [slog.Logger] writing to w in the given format. Unknown formats fall back to text.
func New(w io.Writer, level, format string) *slog.Logger {
	return slog.New(CreateHandler(w, level, format))
}

// Setup creates a logger and installs it as the default.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	return logger
}

// CreateHandler creates a [slog.Handler] by strings.
func CreateHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: GetLevel(level)}

	switch strings.ToLower(format) {
	case JSONFormat:
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
