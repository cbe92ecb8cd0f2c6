// Package logger builds the application's zerolog logger from config.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level. Format "console"
// renders human-readable output; anything else emits JSON lines.
func New(w io.Writer, levelStr, format string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// NewStderr is the common case: a logger on standard error.
func NewStderr(levelStr, format string) (zerolog.Logger, error) {
	return New(os.Stderr, levelStr, format)
}
