package auth

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	ErrUnknownMethod = errors.New("auth: unknown method type")
	ErrNilStrategy   = errors.New("auth: strategy must not be nil")
)

// ErrConnection indicates the external auth server could not be reached.
// Exchanger implementations wrap it around the underlying transport error.
var ErrConnection = errors.New("auth: external server unreachable")

// StatusError reports a non-success response from the external auth server.
// Message carries the structured error body when the server provided one.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth: external server returned status %d", e.Status)
	}
	return fmt.Sprintf("auth: external server returned status %d: %s", e.Status, e.Message)
}
