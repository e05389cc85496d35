// Package logging provides config-driven categorized logging on zap.
// Logs are written to a dated file under the configured directory so the
// interactive form keeps the terminal to itself. When debug_mode is false
// every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ballotbox/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config, shutdown
	CategoryBallot Category = "ballot" // Submissions and their outcomes
	CategoryStore  Category = "store"  // Vote file reads, appends, index
	CategoryForm   Category = "form"   // Interactive form events
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	logFile *os.File
	console bool
)

// Initialize builds the shared logger from c. With debug_mode off nothing is
// written to disk. When sink is non-nil, records are also sent there at debug
// level, regardless of debug_mode; the CLI uses this for --verbose.
// Category toggles only apply when no console sink is attached.
func Initialize(c config.LoggingConfig, sink zapcore.WriteSyncer) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	cfg = c
	console = sink != nil

	var cores []zapcore.Core
	if c.DebugMode {
		if c.Dir == "" {
			return fmt.Errorf("log directory required")
		}
		if err := os.MkdirAll(c.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}

		// Date prefix for easy rotation
		name := fmt.Sprintf("%s_ballot.log", time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(filepath.Join(c.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		cores = append(cores, zapcore.NewCore(newEncoder(c.Format), zapcore.AddSync(f), parseLevel(c.Level)))
	}
	if sink != nil {
		enc := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, zapcore.DebugLevel))
	}

	if len(cores) == 0 {
		base = zap.NewNop()
		return nil
	}
	base = zap.New(zapcore.NewTee(cores...))

	base.Named(string(CategoryBoot)).Info("logging initialized",
		zap.Bool("debug_mode", c.DebugMode),
		zap.String("level", c.Level),
		zap.String("dir", c.Dir),
	)
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "text" {
		return zapcore.NewConsoleEncoder(enc)
	}
	return zapcore.NewJSONEncoder(enc)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled in the config.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns a logger named after category. Disabled categories get a no-op
// logger unless a console sink is attached.
func Get(category Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if !console && !cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return base.Named(string(category))
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

// Close flushes and closes the log file (call at shutdown).
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	_ = base.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = zap.NewNop()
	console = false
}

// Boot logs to the boot category
func Boot(msg string, fields ...zap.Field) {
	Get(CategoryBoot).Info(msg, fields...)
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn(t.op+" slow", zap.Duration("elapsed", elapsed), zap.Duration("threshold", threshold))
	} else {
		Get(t.category).Debug(t.op+" completed", zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
