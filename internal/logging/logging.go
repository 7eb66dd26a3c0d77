// Package logging builds the process-wide zerolog logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"sohd/internal/config"
)

// ParseLevel maps a config level onto zerolog. Unknown values fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing to stderr, plus a rotated file when cfg.File is set.
// The returned closer releases the file sink and is safe to call when there is none.
func New(cfg config.LogConfig, component string) (zerolog.Logger, io.Closer) {
	return NewWithWriter(cfg, component, os.Stderr)
}

// NewWithWriter is New with an explicit console destination.
func NewWithWriter(cfg config.LogConfig, component string, w io.Writer) (zerolog.Logger, io.Closer) {
	var out io.Writer = w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		// file sink is always JSON so it can be shipped as-is
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}
	l := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Str("component", component).Logger()
	return l, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
