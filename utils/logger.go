package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger provides leveled, printf-style logging throughout the application,
// backed by zerolog's console writer.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a Logger writing human-readable, timestamped lines to stdout.
// The level defaults to info; use SetLevel to change it after config is loaded.
func NewLogger() *Logger {
	cw := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
	return &Logger{
		zl: zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	}
}

// SetLevel adjusts the minimum level. Unknown names fall back to info.
func (l *Logger) SetLevel(level string) {
	l.zl = l.zl.Level(parseLevel(level))
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
