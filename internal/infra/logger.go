package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases the zerolog.Logger so packages outside infra can accept a
// logger without importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger builds the service logger. Development gets debug output on a
// console writer; everything else logs JSON at info.
func NewLogger(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "adstudio").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// LoggerOrNop dereferences l, returning a discarding logger for nil.
func LoggerOrNop(l *Logger) Logger {
	if l == nil {
		return zerolog.New(io.Discard)
	}
	return *l
}
