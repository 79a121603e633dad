package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log output formats accepted by Config.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// parseLogLevel accepts the slog level names, case-insensitively, with an
// optional offset such as "debug+2".
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: want debug, info, warn or error", s)
	}
	return level, nil
}

func checkLogFormat(s string) error {
	switch strings.ToLower(s) {
	case LogFormatText, LogFormatJSON:
		return nil
	}
	return fmt.Errorf("invalid log format %q: want %s or %s", s, LogFormatText, LogFormatJSON)
}

// newLogger builds the per-run logger from a validated config. Every record
// carries run_id. The global logger is left untouched.
func newLogger(cfg *Config, outW io.Writer, runID string) *slog.Logger {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, LogFormatJSON) {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler).With("run_id", runID)
}
