// Package stromboli provides domain-based focus navigation for
// keyboard-driven applications on embedded Linux devices, particularly
// handheld consoles where a pointer is unavailable and the UI mounts,
// unmounts, and resizes its regions at arbitrary times.
//
// The package models the screen as independently registered "domains" of
// focusable elements, each with its own layout mode (grid, list, or
// free-form spatial), and maintains a single global cursor that moves
// between elements on directional input and crosses between adjacent
// domains geometrically. A pending-restoration cache keeps focus stable
// while the surrounding UI churns: when a focused element or domain
// disappears and later re-registers, focus returns to exactly where it
// was, in whatever order the region remounts its children.
//
// Sibling packages provide the surrounding plumbing: input (evdev key
// listener), shell (side-effect orchestration), compositor (two-slot
// window allocator), audio (cue and ambience engine), assetcache (remote
// asset disk cache), and pty (terminal session manager).
package stromboli

import (
	"log/slog"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first logging call to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g. "debug",
// "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetNavTraceLevel sets the level for stromboli's own navigation tracing,
// which is silenced to errors by default.
func SetNavTraceLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}
