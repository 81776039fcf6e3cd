// Package logging provides leveled diagnostic logging for fpm.
//
// User-facing output goes through the ui package. This package is for
// diagnostics that only show up with -v, written to stderr:
//
//	logging.Init(logging.Config{Verbosity: 2})
//	logger := logging.Get("history")
//	logger.Info("appended entry", "action", "install", "items", 2)
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Config configures the logging system.
type Config struct {
	// Verbosity is the number of -v flags: 0 errors only, 1 warnings,
	// 2 info, 3 or more debug.
	Verbosity int

	// Quiet discards all diagnostic output.
	Quiet bool

	// Output is where log lines go. Nil means stderr.
	Output io.Writer
}

var (
	mu   sync.RWMutex
	root = log.NewWithOptions(io.Discard, log.Options{})
)

// LevelForVerbosity maps a -v count to a log level.
func LevelForVerbosity(v int) log.Level {
	switch {
	case v <= 0:
		return log.ErrorLevel
	case v == 1:
		return log.WarnLevel
	case v == 2:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// Init replaces the root logger. Loggers obtained from Get before Init keep
// writing to the previous root.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Quiet {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           LevelForVerbosity(cfg.Verbosity),
		ReportTimestamp: cfg.Verbosity >= 3,
		TimeFormat:      time.TimeOnly,
	})

	mu.Lock()
	root = logger
	mu.Unlock()
}

// Get returns a logger tagged with the given component name.
func Get(component string) *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.WithPrefix(component)
}
