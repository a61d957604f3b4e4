// Package logging builds the application logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/wordcrawl/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger configured by cfg and a closer for its output.
// OutputPath may be "stderr", "stdout" or a file path, which is appended to.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.OutputPath {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	return NewWithWriter(out, cfg.Format, level), closer, nil
}

// NewWithWriter builds a logger writing to out. Format "json" emits one JSON
// object per line; anything else uses the human readable console writer.
func NewWithWriter(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
