package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunLevel represents the run log verbosity level.
type RunLevel int

const (
	// RunLevelInfo is the default logging level.
	RunLevelInfo RunLevel = iota
	// RunLevelDebug enables verbose debug logging.
	RunLevelDebug
)

// RunLogger writes a per-invocation log file identified by a run ID.
type RunLogger struct {
	level    RunLevel
	logger   *log.Logger
	file     *os.File
	filePath string
	runID    string
}

// Setup creates a new run logger that writes to a timestamped log file.
// Returns nil if logging is disabled (noLog=true).
func Setup(logDir string, verbose, noLog bool) (*RunLogger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("vidcomply_run_%s_%s.log", timestamp, runID[:8])
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := RunLevelInfo
	if verbose {
		level = RunLevelDebug
	}

	l := &RunLogger{
		level:    level,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
		runID:    runID,
	}

	l.Info("vidcomply starting, run %s", runID)
	if verbose {
		l.Info("Debug level logging enabled")
	}
	l.Info("Log file: %s", filePath)

	return l, nil
}

// Close closes the log file.
func (l *RunLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *RunLogger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// RunID returns the unique identifier for this run.
func (l *RunLogger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Info logs an info-level message.
func (l *RunLogger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
func (l *RunLogger) Debug(format string, args ...any) {
	if l == nil || l.level < RunLevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}

// Warn logs a warning message.
func (l *RunLogger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Error logs an error message.
func (l *RunLogger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}

// Writer returns an io.Writer that writes to the log file.
func (l *RunLogger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
