package googleauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConfig indicates the client id or secret is not configured.
	// It is returned before any network call is made.
	ErrMissingConfig = errors.New("googleauth: client id or secret is not configured")

	// ErrVerification indicates the tokeninfo endpoint could not confirm the
	// identity token (transport failure, non-success status or a bad body).
	ErrVerification = errors.New("googleauth: failed to verify identity token")

	// ErrInvalidAudience indicates the identity token was issued for a
	// different client id.
	ErrInvalidAudience = errors.New("googleauth: identity token audience mismatch")

	// ErrTokenExpired indicates the identity token expiry has passed.
	ErrTokenExpired = errors.New("googleauth: identity token has expired")
)

// ExchangeError reports a non-success response from the token endpoint. The
// provider's own error code and description are preserved verbatim for
// diagnostics.
type ExchangeError struct {
	Code        string
	Description string
}

func (e *ExchangeError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("googleauth: token exchange failed (%s)", e.Code)
	}
	return fmt.Sprintf("googleauth: token exchange failed (%s): %s", e.Code, e.Description)
}
