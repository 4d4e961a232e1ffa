// Package log wraps log/slog with a small configuration surface shared by
// the sweep CLI: level, text/json format, timestamp layout, caller info,
// and an optional colorized pretty printer for interactive use.
//
// A package-level default logger writes to stderr and is reconfigured via
// [Config]; components that need scoped attributes derive their own with
// [With] or construct an independent [Logger] with [Make].
package log
