// Package logging provides structured logging for the go-dogfight
// simulation. It wraps zerolog to give each component a named logger with
// a level controlled by the DOGFIGHT_LOG_LEVEL environment variable.
// Valid levels: debug, info, warn, error. Defaults to info.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with key-value convenience methods used
// throughout the simulation.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a logger for the named component, writing console
// output to stderr.
func NewLogger(component string) *Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	logger := zerolog.New(writer).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Str("component", component).
		Logger()
	return &Logger{logger: logger}
}

// NewNopLogger returns a logger that discards everything. Used by tests
// and by components constructed without a logger.
func NewNopLogger() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(toFields(keysAndValues)).Msg(msg)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, err error, keysAndValues ...any) {
	event := l.logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(toFields(keysAndValues)).Msg(msg)
}

// levelFromEnv determines the log level from the environment.
func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("DOGFIGHT_LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// toFields converts key-value pairs to a map for zerolog.
func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
