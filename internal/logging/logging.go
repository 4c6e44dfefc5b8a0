// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger setup
type Options struct {
	Level   string
	Output  io.Writer
	Console bool // human readable output instead of JSON lines
}

// LevelFromString maps a level name to a zerolog level, defaulting to warn
func LevelFromString(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return zerolog.ErrorLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "off", "disabled":
		return zerolog.Disabled
	}
	return zerolog.WarnLevel
}

// Setup replaces the global logger and level
func Setup(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zerolog.SetGlobalLevel(LevelFromString(opts.Level))
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}
