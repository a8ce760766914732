// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// TODO: Allow configuration of log level via the YAML config.

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logFileHandle *os.File
)

// appDirName is the directory created under the XDG state dir.
const appDirName = "rgui"

// LogFilePath determines the path for the application log file based on XDG spec.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, appDirName, "app.log"), nil
}

// openLogFile creates the log directory and opens the file for appending.
func openLogFile() (*os.File, error) {
	logFilePath, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		return nil, fmt.Errorf("error creating log directory: %w", err)
	}
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %w", logFilePath, err)
	}
	return file, nil
}

// setupLogging configures the default logger to write to file and/or stderr.
func setupLogging(logToFile bool, logToStderr bool) {
	var writers []io.Writer

	if logToFile {
		file, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "File logging disabled: %v\n", err)
		} else {
			writers = append(writers, file)
			logFileHandle = file
		}
	}

	if logToStderr {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		// TUI mode with a broken log file: drop records rather than scribble over the screen.
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: slog.LevelInfo})
	defaultLogger = slog.New(handler)
}

// InitLogger initializes the logger based on the execution mode (TUI or CLI).
// The TUI owns the terminal, so it only logs to file.
func InitLogger(isTUI bool) {
	mu.Lock()
	defer mu.Unlock()
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
	setupLogging(true, !isTUI)
}

// Close flushes and closes the log file, if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
	defaultLogger = nil
}

// SetLogger replaces the default logger instance. Tests use it to capture records.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// get returns the active logger. Before InitLogger runs (tests, library use)
// it falls back to warn-level text on stderr without touching the filesystem.
func get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) {
	get().Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
