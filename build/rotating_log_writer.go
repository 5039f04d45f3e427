package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

const (
	// defaultMaxLogRolls is the default number of rolled log files to
	// keep, matching dcrlnd's log rotation defaults.
	defaultMaxLogRolls = 99

	// maxRollFileSize is the rotation threshold at which the active log
	// file rolls over into an uncompressed backup.
	maxRollFileSize = 10 * 1024 * 1024
)

// RotatingLogWriter wraps a rotating log file and a set of sub-loggers
// fed by it, mirroring dcrlnd's build.RotatingLogWriter.
type RotatingLogWriter struct {
	rotator *rotator.Rotator
	backend slog.Backend
	subLoggers map[string]slog.Logger
}

// NewRotatingLogWriter instantiates a new log writer that has not yet
// been initialized with an output log file. InitLogRotator must be
// called first, the same ordering dcrlnd's config loading enforces.
func NewRotatingLogWriter() *RotatingLogWriter {
	w := &RotatingLogWriter{
		subLoggers: make(map[string]slog.Logger),
	}
	w.backend = slog.NewBackend(w)
	return w
}

// Write implements io.Writer, satisfying the slog.Backend contract; it
// writes to both the rotator (if initialized) and stdout.
func (w *RotatingLogWriter) Write(b []byte) (int, error) {
	os.Stdout.Write(b)
	if w.rotator != nil {
		return w.rotator.Write(b)
	}
	return len(b), nil
}

// InitLogRotator opens/creates the log file at logFile, with rolling
// governed by maxLogRolls.
func (w *RotatingLogWriter) InitLogRotator(logFile string, maxLogRolls int) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if maxLogRolls <= 0 {
		maxLogRolls = defaultMaxLogRolls
	}
	r, err := rotator.New(logFile, maxRollFileSize, false, maxLogRolls)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	w.rotator = r
	return nil
}

// GenSubLogger creates a new sub-logger for subsystem, backed by this
// writer, and tracks it so SubLoggers can list every registered one.
func (w *RotatingLogWriter) GenSubLogger(subsystem string) slog.Logger {
	l := w.backend.Logger(subsystem)
	w.subLoggers[subsystem] = l
	return l
}

// SubLoggers returns the full set of registered sub-loggers, keyed by
// subsystem tag.
func (w *RotatingLogWriter) SubLoggers() map[string]slog.Logger {
	return w.subLoggers
}

// Close flushes and closes the underlying rotator, if any.
func (w *RotatingLogWriter) Close() error {
	if w.rotator == nil {
		return nil
	}
	return w.rotator.Close()
}

var _ io.Writer = (*RotatingLogWriter)(nil)
