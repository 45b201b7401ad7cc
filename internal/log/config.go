package log

import (
	"io"
	"log/slog"
	"strings"
)

// Config represents logging configuration.
type Config struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	// TraceSQL logs every statement sent to the store at info level
	// instead of debug.
	TraceSQL bool `json:"trace_sql" mapstructure:"trace_sql"`
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Format:   "text",
		TraceSQL: true,
	}
}

// ParseLevel parses string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Configure builds a logger writing to w from cfg and installs it as the
// default.
func Configure(cfg Config, w io.Writer) Logger {
	level := ParseLevel(cfg.Level)

	var logger Logger
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger = NewJSONLogger(w, level)
	default:
		logger = NewTextLogger(w, level)
	}

	SetDefault(logger)
	return logger
}
