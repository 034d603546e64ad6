// Package debug provides debug logging utilities.
//
// The terminal belongs to the TUI, so debug output goes to a log file.
// Logging is off until Enable is called (--debug or PATHWAY_DEBUG=1).
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
	closer io.Closer
)

// Enable starts writing debug records to path, appending. A log file opened
// by an earlier Enable is closed.
func Enable(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	SetOutput(f)

	mu.Lock()
	prev := closer
	closer = f
	mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			return fmt.Errorf("close previous debug log: %w", err)
		}
	}
	return nil
}

// SetOutput routes debug records to w. A nil w disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		logger = nil
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close disables logging and closes the log file opened by Enable.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logger != nil
}

// Logf writes a formatted debug message if logging is enabled.
func Logf(format string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if l == nil {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// Log writes a structured debug record if logging is enabled.
func Log(msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if l == nil {
		return
	}
	l.Debug(msg, args...)
}
