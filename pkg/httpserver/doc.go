// Package httpserver provides a lightweight wrapper around net/http that
// adds graceful shutdown, configurable timeouts and structured logging via
// slog. Run blocks until the context is cancelled or an interrupt/TERM
// signal is received, then shuts down with a configurable deadline. Start
// and shutdown failures are wrapped with the ErrStart and ErrShutdown
// sentinels so they can be inspected with errors.Is.
package httpserver
