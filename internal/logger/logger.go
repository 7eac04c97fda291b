// Package logger provides the configured zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger tagged with serviceName and installs it as the
// global zerolog logger. Unknown levels fall back to info.
func New(serviceName, level string, pretty bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(out).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
	log.Logger = l
	return l
}

// GormWriter adapts a zerolog logger to gorm's logger.Writer.
type GormWriter struct {
	L zerolog.Logger
}

func (w GormWriter) Printf(format string, args ...any) {
	w.L.Warn().Str("component", "gorm").Msgf(format, args...)
}
