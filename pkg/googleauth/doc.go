// Package googleauth implements the Google OAuth authorization-code flow:
// consent URL construction, code-for-token exchange and identity-token
// verification against the tokeninfo endpoint.
//
// The Flow exposes three independent operations plus a composition:
//
//   - AuthURL builds the consent URL with scope "openid email profile",
//     offline access and forced consent, threading an opaque state value.
//   - ExchangeCode posts the authorization code to the token endpoint and
//     returns the access, identity and refresh tokens. Provider rejections
//     are surfaced as *ExchangeError with the provider's error code and
//     description preserved verbatim.
//   - VerifyIDToken confirms the identity token and enforces that the
//     audience matches the configured client id and the expiry is in the
//     future. The failure kinds (ErrVerification, ErrInvalidAudience,
//     ErrTokenExpired) stay distinct for callers and tests.
//   - Authenticate composes exchange and verification and converts any
//     failure into an auth.Result, satisfying auth.GoogleAuthenticator.
//
// Configuration comes from the environment (GOOGLE_CLIENT_ID,
// GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URI) and is validated on every
// operation, before any network call. There are no retries anywhere in the
// flow; a failed exchange or verification is terminal for that attempt and
// the caller must start over with a fresh authorization code.
package googleauth
