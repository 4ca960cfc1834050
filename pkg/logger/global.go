package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default logger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(New())
}

// Default returns the global default logger instance.
func Default() *charm.Logger {
	return defaultLogger.Load().(*charm.Logger)
}

// SetDefault sets a new global default logger instance.
func SetDefault(logger *charm.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a new logger with default settings.
func New() *charm.Logger {
	return charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: false,
	})
}
