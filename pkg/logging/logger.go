// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for hintcheck components.
//
// The logger writes to stderr by default so check output on stdout stays
// machine-readable; file logging can be enabled alongside it. Everything
// is built on the standard library slog package with a fan-out handler
// for multi-destination output.
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("run completed", "findings", n)
//
// # File Logging
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    LogDir:  "~/.hintcheck/logs",  // Supports ~ expansion
//	    Service: "hintcheck",
//	})
//	defer logger.Close()
//
// File logs are named `{service}_{date}.log` and are always JSON.
//
// # Thread Safety
//
// Logger is safe for concurrent use. The underlying slog.Logger is
// thread-safe and the file handle is only touched under a mutex.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
// Setting a minimum level filters out everything below it.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for recoverable, unexpected situations.
	LevelWarn

	// LevelError is for failed operations the process survives.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel bridges Level to the standard library.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// Level. Unknown strings fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures the Logger. A zero-value Config writes Info+ messages
// to stderr in text format.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// LogDir enables file logging to the specified directory. When set,
	// logs go to both stderr and a "{Service}_{YYYY-MM-DD}.log" JSON file.
	// Supports ~ expansion. Default: "" (disabled).
	LogDir string

	// Service is included in every entry as the "service" attribute.
	Service string

	// JSON switches the stderr handler to JSON output. File logs are
	// always JSON regardless.
	JSON bool

	// Quiet disables stderr output; logs go only to the file, if any.
	Quiet bool
}

// Logger wraps slog.Logger with multi-destination output and cleanup.
type Logger struct {
	slog   *slog.Logger
	config Config
	file   *os.File
	mu     sync.Mutex
}

// New creates a Logger for the given configuration. Call Close when file
// logging is enabled so the handle is synced and released.
func New(config Config) *Logger {
	var handlers []slog.Handler

	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	if !config.Quiet {
		if config.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	logger := &Logger{config: config}

	if config.LogDir != "" {
		logDir := expandPath(config.LogDir)
		if err := os.MkdirAll(logDir, 0750); err == nil {
			serviceName := config.Service
			if serviceName == "" {
				serviceName = "hintcheck"
			}
			filename := fmt.Sprintf("%s_%s.log", serviceName, time.Now().Format("2006-01-02"))
			logPath := filepath.Join(logDir, filename)

			file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
			if err == nil {
				logger.file = file
				handlers = append(handlers, slog.NewJSONHandler(file, opts))
			}
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		// Quiet with no file still needs a sink.
		handler = slog.NewTextHandler(os.Stderr, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	logger.slog = slog.New(handler)
	return logger
}

// Default returns an Info-level stderr logger for CLI use.
func Default() *Logger {
	return New(Config{
		Level:   LevelInfo,
		Service: "hintcheck",
	})
}

// Debug logs a message at Debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a child Logger carrying additional attributes. The parent
// is not modified; the file handle is shared.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
		file:   l.file,
	}
}

// Slog returns the underlying slog.Logger for APIs that take one.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close syncs and closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log file: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	l.file = nil
	return nil
}

// multiHandler fans out log records to multiple slog handlers, enabling
// simultaneous stderr and file output with different formats.
type multiHandler struct {
	handlers []slog.Handler
}

// Enabled returns true if any handler is enabled for the level.
func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle sends the record to all enabled handlers.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WithAttrs returns a new handler with additional attributes.
func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

// WithGroup returns a new handler with a group name.
func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
