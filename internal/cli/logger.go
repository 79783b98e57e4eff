package cli

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger builds the process logger. level is one of debug, info, warn or
// error; format is text or json.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case logFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (valid: text, json)", format)
	}
}

// Rotation limits for log_file.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// logWriter returns the destination for log records. An empty path logs to
// stderr; otherwise records go to a size-rotated file that the caller must
// close.
func logWriter(stderr io.Writer, path string) io.WriteCloser {
	if path == "" {
		return nopCloser{stderr}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
