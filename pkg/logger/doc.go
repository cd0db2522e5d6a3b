// Package logger provides a slog factory configured from the environment and
// attribute helpers with well-known keys so log fields stay consistent across
// the codebase.
package logger
