// Package authapi exposes the authentication registry and session holder as
// a JSON HTTP API:
//
//	POST /login              — password authentication
//	POST /oauth/{provider}   — OAuth authentication (google handled locally,
//	                           other providers proxied to the auth server)
//	GET  /oauth/google/url   — Google consent URL with state passthrough
//	GET  /methods            — enabled methods in registration order
//	GET  /session            — current session snapshot
//	POST /logout             — clear session state and persisted entries
//
// Mount the router under the application's auth prefix:
//
//	r.Mount("/api/auth", svc.Router())
package authapi
