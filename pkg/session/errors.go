package session

import "errors"

var (
	// ErrNotFound indicates the key has no stored value.
	ErrNotFound = errors.New("session: entry not found")

	// ErrNilUser is returned when logging in without an identity.
	ErrNilUser = errors.New("session: user must not be nil")
)
