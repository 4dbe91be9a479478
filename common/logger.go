package common

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the root zerolog logger used by the engine and CLI.
// Components derive their own logger with logger.With().Str("component", name).Logger().
//
// Parameters:
//   - level: zerolog level name ("debug", "info", "warn", ...); unknown names fall back to info
//   - pretty: when true, writes human-readable console output instead of JSON
//
// Returns:
//   - zerolog.Logger: the configured logger writing to stderr
func NewLogger(level string, pretty bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
