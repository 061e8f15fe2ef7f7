// Package logger holds the process-wide zerolog logger used by the server.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	SetConsoleWriter()
}

// Log returns the global logger.
func Log() *zerolog.Logger {
	return &log
}

// SetConsoleWriter writes human readable lines to stderr.
func SetConsoleWriter() {
	SetOutput(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = "15:04:05.000"
	}))
}

// SetJSONWriter writes one JSON object per line to stderr.
func SetJSONWriter() {
	SetOutput(os.Stderr)
}

// SetOutput sends log events to w.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetFormat selects "console" or "json" output.
func SetFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "console":
		SetConsoleWriter()
	case "json":
		SetJSONWriter()
	default:
		return fmt.Errorf("logger: unknown format %q", format)
	}
	return nil
}

// ParseLevel maps trace, debug, info, warn, error and silent to zerolog levels.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "silent", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("logger: unknown level %q", level)
}

// SetLevel sets the global level.
func SetLevel(level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
