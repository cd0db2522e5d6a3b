package auth

import "context"

// Method identifies a pluggable authentication strategy.
type Method string

// Built-in authentication method tags. The set is closed: the registry only
// accepts entries registered under one of these tags.
const (
	MethodPassword Method = "password"
	MethodOAuth    Method = "oauth"
)

// OAuth provider identifiers handled by the oauth strategy.
const (
	ProviderGoogle = "google"
)

// User is the identity record surfaced to the session layer. ID is assigned
// by the authenticating authority and treated as opaque.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Result is the normalized outcome of an authentication attempt. Message is
// always present and human-readable; Token and User are set only on success.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// Credentials is the closed set of credential payloads accepted by strategies.
type Credentials interface {
	credentials()
}

// PasswordCredentials carries username/password input. Both fields are
// required; the password strategy rejects empty values before any I/O.
type PasswordCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (PasswordCredentials) credentials() {}

// OAuthCredentials selects a downstream OAuth provider. Code and State are
// present only on the callback leg of the flow.
type OAuthCredentials struct {
	Provider string `json:"provider"`
	Code     string `json:"code,omitempty"`
	State    string `json:"state,omitempty"`
}

func (OAuthCredentials) credentials() {}

// ExchangeResponse is the normalized payload returned by the external auth
// server. Success bodies are arbitrary JSON, so every field is optional.
type ExchangeResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// CredentialExchanger performs the raw network exchange with the external
// auth server. Implementations return *StatusError for non-success responses
// and wrap ErrConnection for transport failures.
type CredentialExchanger interface {
	Login(ctx context.Context, creds PasswordCredentials) (*ExchangeResponse, error)
	OAuth(ctx context.Context, creds OAuthCredentials) (*ExchangeResponse, error)
}

// GoogleAuthenticator completes the Google authorization-code flow for a
// callback code. Failures terminate in the Result; no error escapes.
type GoogleAuthenticator interface {
	Authenticate(ctx context.Context, code string) Result
}

// Strategy is the uniform contract implemented by every authentication
// method. Implementations never let an error escape: every failure mode
// terminates in a Result with Success set to false.
type Strategy interface {
	Authenticate(ctx context.Context, creds Credentials) Result
}
