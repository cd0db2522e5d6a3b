// Package authclient is the credential exchange client for the external auth
// server. It implements auth.CredentialExchanger over two endpoints:
//
//	POST {server}/login             — password credentials as JSON
//	POST {server}/oauth/{provider}  — provider-specific JSON payload
//
// Responses are normalized: 2xx bodies are decoded into
// auth.ExchangeResponse (token and user optional), non-success statuses
// become *auth.StatusError carrying the structured {message} body when one
// was provided, and transport failures wrap auth.ErrConnection. The caller
// decides how failures map to user-facing results.
package authclient
