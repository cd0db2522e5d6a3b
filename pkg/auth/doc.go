// Package auth implements a pluggable authentication-method registry with a
// uniform dispatch protocol over a closed set of strategies.
//
// Each strategy implements the Strategy interface and is registered under an
// enumerated Method tag together with localized display metadata and an
// enabled flag. Dispatch applies a two-stage guard (existence, then
// enablement) before delegating to the strategy, so callers can distinguish
// an unknown method from a disabled one. Strategies convert every failure
// mode into a Result; no error value ever escapes an authentication attempt.
//
// The built-in set covers password authentication against an external auth
// server and OAuth authentication, where the Google callback leg is handled
// by a GoogleAuthenticator (see pkg/googleauth) and all other providers are
// forwarded to the external server.
//
// Usage:
//
//	client := authclient.New("http://localhost:8080")
//	flow := googleauth.NewFlow(googleCfg)
//	registry := auth.NewDefaultRegistry(client, flow, auth.WithLogger(log))
//
//	result := registry.Dispatch(ctx, auth.MethodPassword, auth.PasswordCredentials{
//		Username: "alice",
//		Password: "secret",
//	})
//	if result.Success {
//		// result.User and result.Token are set.
//	}
//
// The registry is an explicit instance passed to its consumers; there is no
// package-level singleton. Enable/disable mutations and dispatch are
// serialized internally, so a registry can be shared across handlers.
package auth
