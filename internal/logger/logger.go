// Package logger is the engine's verbose diagnostic channel. With the
// --verbose flag set, the discovery pipeline narrates itself to stderr:
// which strategies ran, what each contributed, where a degradation was
// absorbed. Without it, the package is silent.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type state struct {
	mu  sync.RWMutex
	on  bool
	out io.Writer
}

var std = &state{out: os.Stderr}

// SetVerbose toggles verbose output globally.
func SetVerbose(v bool) {
	std.mu.Lock()
	std.on = v
	std.mu.Unlock()
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.on
}

// SetOutput redirects verbose output, os.Stderr by default. Tests use
// this to capture the stream.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	std.out = w
	std.mu.Unlock()
}

// Debug logs fine-grained pipeline progress.
func Debug(format string, args ...any) { std.emit("[DEBUG] "+format+"\n", args...) }

// Info logs notable pipeline events.
func Info(format string, args ...any) { std.emit("[INFO] "+format+"\n", args...) }

// Warn logs absorbed failures and degradations.
func Warn(format string, args ...any) { std.emit("[WARN] "+format+"\n", args...) }

// Section marks the start of a pipeline stage.
func Section(name string) { std.emit("\n=== %s ===\n", name) }

func (s *state) emit(format string, args ...any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.on {
		return
	}
	fmt.Fprintf(s.out, format, args...)
}
