package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogConfig configures a LogBackend.
type LogConfig struct {
	// LogFile is the path of the rotated log file. Empty disables file
	// logging.
	LogFile      string
	DebugLevel   string
	MaxLogFiles  int
	MaxLogSizeKB int64

	// Stdout receives every log line as well. Defaults to os.Stdout.
	Stdout io.Writer
}

const (
	defaultMaxLogFiles  = 10
	defaultMaxLogSizeKB = 10 * 1024
)

// logWriter fans log lines out to stdout and the rotator.
type logWriter struct {
	stdout  io.Writer
	rotator *rotator.Rotator
}

// Write sends p to both outputs even if one fails and returns the first
// error.
func (w logWriter) Write(p []byte) (int, error) {
	var firstErr error
	if w.stdout != nil {
		if _, err := w.stdout.Write(p); err != nil {
			firstErr = fmt.Errorf("stdout: %w", err)
		}
	}
	if w.rotator != nil {
		if _, err := w.rotator.Write(p); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("log file: %w", err)
		}
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return len(p), nil
}

// LogBackend hands out per-subsystem loggers sharing one output and level.
type LogBackend struct {
	backend *slog.Backend
	rotator *rotator.Rotator

	mu      sync.Mutex
	level   slog.Level
	loggers map[string]slog.Logger
}

// NewLogBackend creates the backend described by cfg.
func NewLogBackend(cfg LogConfig) (*LogBackend, error) {
	level := slog.LevelInfo
	if cfg.DebugLevel != "" {
		var ok bool
		level, ok = slog.LevelFromString(cfg.DebugLevel)
		if !ok {
			return nil, fmt.Errorf("invalid debug level %q", cfg.DebugLevel)
		}
	}

	w := logWriter{stdout: cfg.Stdout}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}

	var r *rotator.Rotator
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		maxFiles := cfg.MaxLogFiles
		if maxFiles <= 0 {
			maxFiles = defaultMaxLogFiles
		}
		maxSize := cfg.MaxLogSizeKB
		if maxSize <= 0 {
			maxSize = defaultMaxLogSizeKB
		}
		var err error
		r, err = rotator.New(cfg.LogFile, maxSize, false, maxFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		w.rotator = r
	}

	return &LogBackend{
		backend: slog.NewBackend(w),
		rotator: r,
		level:   level,
		loggers: make(map[string]slog.Logger),
	}, nil
}

// Logger returns the logger of a subsystem, creating it on first use.
// Subsystem tags are upper-cased, e.g. "EQTY".
func (lb *LogBackend) Logger(subsystem string) slog.Logger {
	tag := strings.ToUpper(subsystem)

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if l, ok := lb.loggers[tag]; ok {
		return l
	}
	l := lb.backend.Logger(tag)
	l.SetLevel(lb.level)
	lb.loggers[tag] = l
	return l
}

// SetLevel changes the level of every logger handed out so far and of those
// created later.
func (lb *LogBackend) SetLevel(debugLevel string) error {
	level, ok := slog.LevelFromString(debugLevel)
	if !ok {
		return fmt.Errorf("invalid debug level %q", debugLevel)
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.level = level
	for _, l := range lb.loggers {
		l.SetLevel(level)
	}
	return nil
}

// Close flushes and closes the log file, if any.
func (lb *LogBackend) Close() error {
	if lb.rotator == nil {
		return nil
	}
	return lb.rotator.Close()
}
