// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options holds configuration for the logger.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json|logfmt
	File   string // rotated log file; empty disables file output
	// Console receives logs when File is empty. Nil discards them, which
	// is what the TUI wants while it owns the terminal.
	Console io.Writer
}

// Logger wraps charmbracelet/log with the file it may own.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to the rotated file when configured,
// otherwise to opts.Console.
func New(opts Options) (*Logger, error) {
	var (
		w    io.Writer = io.Discard
		file *lumberjack.Logger
	)
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		w = file
	case opts.Console != nil:
		w = opts.Console
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: file != nil,
		Prefix:          "tada",
	})
	return &Logger{Logger: l, file: file}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a config string to a log level. Unknown values are info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a config string to a formatter. Unknown values are text.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
