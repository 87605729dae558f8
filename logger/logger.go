// Package logger wraps a global zerolog logger configured from the
// environment.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))

// Init reconfigures the global logger; main calls this after loading .env.
func Init() {
	log = newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
}

func newLogger(level, env string) zerolog.Logger {
	// JSON in production, console writer everywhere else
	var output io.Writer = os.Stdout
	if env != "production" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
func Fatal() *zerolog.Event { return log.Fatal() }
