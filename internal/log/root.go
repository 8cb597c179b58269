// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package log provides module-tagged leveled logging on top of log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	VM  = "vm"  // instruction tracing
	CLI = "cli" // command-line driver
)

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// ParseLevel parses a level name such as "info" or "TRACE".
func ParseLevel(lvl string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(lvl)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("invalid level: %s", lvl)
	}
}

// InitLogger installs a root logger writing to w at the named level.
func InitLogger(logLevel string, w io.Writer) error {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		return err
	}
	SetDefault(NewLogger(NewTextHandler(w, lvl)))
	return nil
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// Trace and Debug records are only written for enabled modules.
var (
	modulesMu sync.RWMutex
	modules   = map[string]bool{CLI: true}
)

// EnableModules enables trace and debug logging for a comma-separated list
// of modules.
func EnableModules(list string) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	for _, m := range strings.Split(list, ",") {
		if m = strings.TrimSpace(m); m != "" {
			modules[m] = true
		}
	}
}

// DisableModule disables trace and debug logging for module.
func DisableModule(module string) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	delete(modules, module)
}

// ModuleEnabled reports whether trace and debug records for module are kept.
func ModuleEnabled(module string) bool {
	modulesMu.RLock()
	defer modulesMu.RUnlock()
	return modules[module]
}

func Trace(module string, msg string, ctx ...any) {
	if !ModuleEnabled(module) {
		return
	}
	Root().Write(LevelTrace, module, msg, ctx...)
}

func Debug(module string, msg string, ctx ...any) {
	if !ModuleEnabled(module) {
		return
	}
	Root().Write(slog.LevelDebug, module, msg, ctx...)
}

// The remaining levels don't filter on module.

func Info(module string, msg string, ctx ...any) {
	Root().Write(slog.LevelInfo, module, msg, ctx...)
}

func Warn(module string, msg string, ctx ...any) {
	Root().Write(slog.LevelWarn, module, msg, ctx...)
}

func Error(module string, msg string, ctx ...any) {
	Root().Write(slog.LevelError, module, msg, ctx...)
}
