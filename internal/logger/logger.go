// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger provides the developer log for biblio.
//
// The TUI owns the terminal, so records go to a file. Until Init is called
// every logger returned by Get discards its output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	base     = discard()
	levelVar = new(slog.LevelVar)
	logFile  *os.File
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn or error onto a slog level.
// Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init opens path for appending and routes all loggers to it.
// Calling Init again replaces the previous file.
func Init(path, level string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("logger: open log file %s: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	levelVar.Set(ParseLevel(level))
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("logger initialized", "path", path, "level", levelVar.Level().String())
	return nil
}

// SetOutput routes all loggers to w. Used by tests and line mode.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	levelVar.Set(ParseLevel(level))
	base = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// Get returns the current logger. Components should call Get when they are
// built so they pick up the file configured by Init.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns Get().With("component", name).
func With(component string) *slog.Logger {
	return Get().With("component", component)
}

// Close closes the log file and reverts to discarding.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = discard()
}
