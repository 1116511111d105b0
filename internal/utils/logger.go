// Package utils provides utility functions for workerctl.
//
// This file implements a debug logger that writes to ~/.workerctl/debug.log so
// the terminal UI never has log output drawn over it.
package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogFileEnv  = "WORKERCTL_LOG_FILE"
	LogLevelEnv = "WORKERCTL_LOG_LEVEL"
)

var debugLogger = zap.NewNop()

// DefaultLogPath returns ~/.workerctl/debug.log
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".workerctl", "debug.log")
}

// LogFilePath returns WORKERCTL_LOG_FILE, falling back to DefaultLogPath
func LogFilePath() string {
	if path := os.Getenv(LogFileEnv); path != "" {
		return path
	}
	return DefaultLogPath()
}

// InitLogger initializes the debug logger from WORKERCTL_LOG_FILE and WORKERCTL_LOG_LEVEL
func InitLogger() error {
	logger, err := NewFileLogger(LogFilePath(), os.Getenv(LogLevelEnv))
	if err != nil {
		return err
	}

	debugLogger = logger
	debugLogger.Info("=== workerctl started ===")
	return nil
}

// NewFileLogger builds a console-encoded logger appending to path.
// An empty or unknown level means debug.
func NewFileLogger(path, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	lvl := zapcore.DebugLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.DebugLevel
		}
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), lvl)
	return zap.New(core, zap.AddCaller()), nil
}

// Logger returns the structured debug logger
func Logger() *zap.Logger {
	return debugLogger
}

// SetLogger replaces the debug logger, mainly for tests
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	debugLogger = logger
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	_ = debugLogger.Sync()
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	debugLogger.WithOptions(zap.AddCallerSkip(1)).Debug(fmt.Sprintf(format, args...))
}
