// Package build carries compile-time and logging support code shared by
// every iota-sdk-go package, mirroring dcrlnd's build package.
package build

import (
	"os"

	"github.com/decred/slog"
)

// LogWriter is a stub that encapsulates standard stdout logging. Under the
// filelog build tag its Write is replaced by one that writes to a file
// instead.
type LogWriter struct{}

// Write writes the byte slice to stdout.
func (w *LogWriter) Write(b []byte) (int, error) {
	os.Stdout.Write(b)
	return len(b), nil
}

// NewSubLogger constructs a new subsystem logger backed by r (a
// *RotatingLogWriter) or, when r is nil, a disabled logger — matching the
// degeri-dcrlnd convention of subsystem loggers that do nothing until
// SetupLoggers wires the real root logger in.
func NewSubLogger(subsystem string, r *RotatingLogWriter) slog.Logger {
	if r == nil {
		return slog.Disabled
	}
	return r.GenSubLogger(subsystem)
}
