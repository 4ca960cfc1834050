package logger

import (
	"fmt"
	"math"
	"strings"

	charm "github.com/charmbracelet/log"
)

// TraceLevel is more verbose than charm's DebugLevel. Used for lock and
// filesystem chatter that is only interesting when debugging the tool itself.
const TraceLevel = charm.DebugLevel - 1

// OffLevel disables all logging.
const OffLevel = charm.Level(math.MaxInt32)

// ParseLogLevel converts a --logs-level flag value into a charm log level.
// Supported levels are Trace, Debug, Info, Warning, and Off.
func ParseLogLevel(logLevel string) (charm.Level, error) {
	switch strings.ToLower(logLevel) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return charm.DebugLevel, nil
	case "info", "":
		return charm.InfoLevel, nil
	case "warning", "warn":
		return charm.WarnLevel, nil
	case "off":
		return OffLevel, nil
	default:
		return charm.InfoLevel, fmt.Errorf("invalid log level %q: valid levels are Trace, Debug, Info, Warning, Off", logLevel)
	}
}

// Trace logs a message at TraceLevel with optional key-value pairs.
func Trace(msg interface{}, keyvals ...interface{}) {
	Default().Log(TraceLevel, msg, keyvals...)
}

// Debug logs a message at DebugLevel with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs a message at InfoLevel with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs a message at WarnLevel with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs a message at ErrorLevel with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}

// SetLevel sets the level on the default logger.
func SetLevel(level charm.Level) {
	Default().SetLevel(level)
}
